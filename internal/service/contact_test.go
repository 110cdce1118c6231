package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/opl-checker/internal/errs"
	"github.com/deppfellow/opl-checker/internal/model"
	"github.com/deppfellow/opl-checker/internal/service"
)

type fakeQueue struct {
	sent []model.ContactMessageRequest
	err  error
}

func (q *fakeQueue) EnqueueContactEmail(_ context.Context, msg model.ContactMessageRequest) error {
	q.sent = append(q.sent, msg)
	return q.err
}

var contactMessage = &model.ContactMessageRequest{
	Name:    "Sam",
	Email:   "sam@example.com",
	Message: "The total on line 4 is wrong.",
}

func TestContactService_Send(t *testing.T) {
	queue := &fakeQueue{}

	resp, err := service.NewContactService(queue).Send(context.Background(), contactMessage)
	require.NoError(t, err)
	assert.Equal(t, "queued", resp.Status)
	assert.Equal(t, []model.ContactMessageRequest{*contactMessage}, queue.sent)
}

func TestContactService_Unavailable(t *testing.T) {
	_, err := service.NewContactService(nil).Send(context.Background(), contactMessage)

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusServiceUnavailable, httpErr.Status)
}

func TestContactService_QueueFailure(t *testing.T) {
	queue := &fakeQueue{err: errors.New("redis down")}

	_, err := service.NewContactService(queue).Send(context.Background(), contactMessage)
	require.Error(t, err)
	assert.False(t, errors.Is(err, &errs.HTTPError{}))
}

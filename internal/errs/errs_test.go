package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deppfellow/opl-checker/internal/errs"
)

func TestConstructors(t *testing.T) {
	code := "CHECK_RUN_ALREADY_EXISTS"

	tests := []struct {
		name       string
		err        *errs.HTTPError
		wantStatus int
		wantCode   string
	}{
		{name: "bad request", err: errs.NewBadRequestError("bad", false, nil, nil), wantStatus: http.StatusBadRequest, wantCode: "BAD_REQUEST"},
		{name: "bad request with code", err: errs.NewBadRequestError("dup", true, &code, nil), wantStatus: http.StatusBadRequest, wantCode: code},
		{name: "not found", err: errs.NewNotFoundError("gone", false, nil), wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "too many requests", err: errs.NewTooManyRequestsError("slow down"), wantStatus: http.StatusTooManyRequests, wantCode: "TOO_MANY_REQUESTS"},
		{name: "service unavailable", err: errs.NewServiceUnavailableError("off"), wantStatus: http.StatusServiceUnavailable, wantCode: "SERVICE_UNAVAILABLE"},
		{name: "internal", err: errs.NewInternalServerError(), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.Status)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestHTTPError_IsAndWithMessage(t *testing.T) {
	base := errs.NewNotFoundError("Route not found", false, nil)
	wrapped := fmt.Errorf("lookup: %w", base)

	assert.True(t, errors.Is(wrapped, &errs.HTTPError{}))
	assert.False(t, errors.Is(errors.New("plain"), &errs.HTTPError{}))

	changed := base.WithMessage("Page not found")
	assert.Equal(t, "Page not found", changed.Message)
	assert.Equal(t, "Route not found", base.Message)
	assert.Equal(t, base.Status, changed.Status)
}

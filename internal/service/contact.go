package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/opl-checker/internal/errs"
	"github.com/deppfellow/opl-checker/internal/model"
)

// ContactQueue hands a contact message to the background mailer.
type ContactQueue interface {
	EnqueueContactEmail(ctx context.Context, msg model.ContactMessageRequest) error
}

type ContactService struct {
	queue ContactQueue
}

// NewContactService builds the service. A nil queue makes Send answer 503.
func NewContactService(queue ContactQueue) *ContactService {
	return &ContactService{queue: queue}
}

func (s *ContactService) Send(ctx context.Context, req *model.ContactMessageRequest) (*model.ContactMessageResponse, error) {
	if s.queue == nil {
		return nil, errs.NewServiceUnavailableError("The contact form is not available right now")
	}

	if err := s.queue.EnqueueContactEmail(ctx, *req); err != nil {
		return nil, fmt.Errorf("failed to enqueue contact email: %w", err)
	}

	return &model.ContactMessageResponse{Status: "queued"}, nil
}

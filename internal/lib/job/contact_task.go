package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/deppfellow/opl-checker/internal/lib/email"
	"github.com/deppfellow/opl-checker/internal/model"
)

const TaskContactEmail = "email:contact"

type ContactEmailPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func NewContactEmailTask(msg model.ContactMessageRequest) (*asynq.Task, error) {
	payload, err := json.Marshal(ContactEmailPayload{
		Name:    msg.Name,
		Email:   msg.Email,
		Message: msg.Message,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskContactEmail,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue(QueueDefault),
		asynq.Timeout(30*time.Second),
	), nil
}

func (j *JobService) EnqueueContactEmail(ctx context.Context, msg model.ContactMessageRequest) error {
	task, err := NewContactEmailTask(msg)
	if err != nil {
		return fmt.Errorf("failed to build contact email task: %w", err)
	}

	if _, err := j.Client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue contact email: %w", err)
	}
	return nil
}

func (j *JobService) handleContactEmailTask(ctx context.Context, t *asynq.Task) error {
	var p ContactEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal contact email payload: %w: %w", err, asynq.SkipRetry)
	}

	if j.mailer == nil {
		return fmt.Errorf("no mailer configured: %w", asynq.SkipRetry)
	}

	j.logger.Info().
		Str("type", TaskContactEmail).
		Str("from", p.Email).
		Msg("processing contact email task")

	err := j.mailer.SendContactEmail(ctx, email.ContactMessage{
		Name:    p.Name,
		Email:   p.Email,
		Message: p.Message,
	})
	if err != nil {
		j.logger.Error().
			Str("type", TaskContactEmail).
			Str("from", p.Email).
			Err(err).
			Msg("failed to send contact email")
		return err
	}

	j.logger.Info().
		Str("type", TaskContactEmail).
		Str("from", p.Email).
		Msg("sent contact email")

	return nil
}

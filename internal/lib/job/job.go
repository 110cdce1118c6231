// Package job runs background work on asynq: recording check runs and
// sending contact emails. Both are Redis-backed and optional.
package job

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/opl-checker/internal/config"
	"github.com/deppfellow/opl-checker/internal/lib/email"
	"github.com/deppfellow/opl-checker/internal/model"
)

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// CheckRunStore persists check runs.
type CheckRunStore interface {
	CreateCheckRun(ctx context.Context, run model.CheckRun) error
}

// ContactMailer delivers contact form messages.
type ContactMailer interface {
	SendContactEmail(ctx context.Context, msg email.ContactMessage) error
}

// JobService owns the asynq client used to enqueue tasks and the worker
// server that runs them.
type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	logger *zerolog.Logger

	runs   CheckRunStore
	mailer ContactMailer
}

func NewJobService(logger *zerolog.Logger, cfg *config.RedisConfig) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Address}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: 10,
		Queues: map[string]int{
			QueueCritical: 6,
			QueueDefault:  3,
			QueueLow:      1,
		},
		Logger: newAsynqLogger(logger),
	})

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		logger: logger,
	}
}

// Start registers the task handlers and starts the workers. It does not
// block.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskRecordCheckRun, j.handleRecordCheckRunTask)
	mux.HandleFunc(TaskContactEmail, j.handleContactEmailTask)

	j.logger.Info().Msg("starting background job server")

	return j.server.Start(mux)
}

func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}

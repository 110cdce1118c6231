package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/deppfellow/opl-checker/internal/model"
	"github.com/deppfellow/opl-checker/internal/sqlerr"
)

const TaskRecordCheckRun = "checker:record_run"

func NewRecordCheckRunTask(run model.CheckRun) (*asynq.Task, error) {
	payload, err := json.Marshal(run)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskRecordCheckRun,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(QueueLow),
		asynq.Timeout(10*time.Second),
	), nil
}

// RecordCheckRun enqueues run for storage.
func (j *JobService) RecordCheckRun(ctx context.Context, run model.CheckRun) error {
	task, err := NewRecordCheckRunTask(run)
	if err != nil {
		return fmt.Errorf("failed to build check run task: %w", err)
	}

	if _, err := j.Client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue check run: %w", err)
	}
	return nil
}

func (j *JobService) handleRecordCheckRunTask(ctx context.Context, t *asynq.Task) error {
	var run model.CheckRun
	if err := json.Unmarshal(t.Payload(), &run); err != nil {
		return fmt.Errorf("failed to unmarshal check run payload: %w: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", TaskRecordCheckRun).
		Str("check_run_id", run.ID.String()).
		Logger()

	if j.runs == nil {
		logger.Debug().Msg("no check run store configured, dropping run")
		return nil
	}

	if err := j.runs.CreateCheckRun(ctx, run); err != nil {
		// A retry after a stored-but-unacknowledged attempt hits the
		// primary key.
		if sqlerr.ErrCode(err) == sqlerr.UniqueViolation {
			logger.Debug().Msg("check run already stored")
			return nil
		}

		logger.Error().Err(err).Msg("failed to store check run")
		return err
	}

	logger.Info().
		Bool("meet_parsed", run.MeetParsed).
		Bool("failed", run.Failed()).
		Msg("stored check run")

	return nil
}

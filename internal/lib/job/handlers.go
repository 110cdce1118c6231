package job

import (
	"github.com/rs/zerolog"

	"github.com/deppfellow/opl-checker/internal/config"
	"github.com/deppfellow/opl-checker/internal/lib/email"
)

// InitHandlers gives the task handlers their collaborators. It must run
// before Start. runs is nil when no database is configured, and the
// mailer is only built when the integration block is present.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger, runs CheckRunStore) error {
	j.runs = runs
	if cfg.Integration == nil {
		return nil
	}

	client, err := email.NewClient(cfg.Integration, logger)
	if err != nil {
		return err
	}
	j.mailer = client
	return nil
}

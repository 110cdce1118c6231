package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/deppfellow/opl-checker/internal/model"
	"github.com/deppfellow/opl-checker/internal/sqlerr"
)

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

type CheckRunRepository struct {
	db execer
}

func NewCheckRunRepository(db execer) *CheckRunRepository {
	return &CheckRunRepository{db: db}
}

const insertCheckRun = `
INSERT INTO check_runs (
    id, meet_parsed, meet_errors, meet_warnings,
    entries_errors, entries_warnings, io_error, duration_ms, created_at
) VALUES (
    @id, @meet_parsed, @meet_errors, @meet_warnings,
    @entries_errors, @entries_warnings, @io_error, @duration_ms, @created_at
)`

// CreateCheckRun stores run. Postgres errors come back as *sqlerr.Error.
func (r *CheckRunRepository) CreateCheckRun(ctx context.Context, run model.CheckRun) error {
	_, err := r.db.Exec(ctx, insertCheckRun, pgx.NamedArgs{
		"id":               run.ID,
		"meet_parsed":      run.MeetParsed,
		"meet_errors":      run.MeetErrors,
		"meet_warnings":    run.MeetWarnings,
		"entries_errors":   run.EntriesErrors,
		"entries_warnings": run.EntriesWarnings,
		"io_error":         run.IOError,
		"duration_ms":      run.Duration.Milliseconds(),
		"created_at":       run.CreatedAt,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			return fmt.Errorf("insert check run: %w", sqlerr.ConvertPgError(pgErr))
		}
		return fmt.Errorf("insert check run: %w", err)
	}
	return nil
}

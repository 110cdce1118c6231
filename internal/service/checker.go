package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/deppfellow/opl-checker/internal/checker"
	"github.com/deppfellow/opl-checker/internal/model"
)

// CheckerEngine validates meet.csv and entries.csv text. A returned error
// means the text could not be read at all; content problems are reported
// as messages.
type CheckerEngine interface {
	CheckMeet(ctx context.Context, text string) (checker.MeetCheckResult, error)
	CheckEntries(ctx context.Context, text string, meet checker.MeetOutcome) (checker.EntriesCheckResult, error)
}

// CheckRunRecorder stores the audit record of a check.
type CheckRunRecorder interface {
	RecordCheckRun(ctx context.Context, run model.CheckRun) error
}

type CheckerService struct {
	engine   CheckerEngine
	recorder CheckRunRecorder
	now      func() time.Time
}

// NewCheckerService builds the service. recorder may be nil, in which case
// runs are not recorded.
func NewCheckerService(engine CheckerEngine, recorder CheckRunRecorder) *CheckerService {
	return &CheckerService{
		engine:   engine,
		recorder: recorder,
		now:      time.Now,
	}
}

// Check runs the meet check and, when it produced a usable meet, the
// entries check against that meet. It never fails: read errors end up in
// the output's io_error.
func (s *CheckerService) Check(ctx context.Context, input *model.CheckerInput) model.CheckerOutput {
	start := s.now()

	output, meetParsed := s.check(ctx, input.MeetText(), input.EntriesText())

	s.record(ctx, output, meetParsed, s.now().Sub(start))

	return output
}

func (s *CheckerService) check(ctx context.Context, meetText, entriesText string) (model.CheckerOutput, bool) {
	meetResult, err := s.engine.CheckMeet(ctx, meetText)
	if err != nil {
		return model.CheckerOutputWithIOError(err), false
	}

	output := model.CheckerOutputWithMeetMessages(meetResult.Report.Messages)

	parsed, ok := meetResult.Meet.(checker.ParsedMeet)
	if !ok {
		// Entries are checked against the meet date, so without a meet
		// there is nothing to check them against.
		return output, false
	}

	entriesResult, err := s.engine.CheckEntries(ctx, entriesText, parsed)
	if err != nil {
		output.SetIOError(err)
		return output, true
	}

	output.EntriesMessages = entriesResult.Report.Messages
	return output, true
}

func (s *CheckerService) record(ctx context.Context, output model.CheckerOutput, meetParsed bool, elapsed time.Duration) {
	if s.recorder == nil {
		return
	}

	run := NewCheckRun(output, meetParsed, elapsed, s.now())

	if err := s.recorder.RecordCheckRun(ctx, run); err != nil {
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Str("check_run_id", run.ID.String()).
			Msg("failed to record check run")
	}
}

// NewCheckRun summarises a checker response into its audit record.
func NewCheckRun(output model.CheckerOutput, meetParsed bool, elapsed time.Duration, at time.Time) model.CheckRun {
	meetErrors, meetWarnings := checker.Report{Messages: output.MeetMessages}.Count()
	entriesErrors, entriesWarnings := checker.Report{Messages: output.EntriesMessages}.Count()

	return model.CheckRun{
		ID:              uuid.New(),
		MeetParsed:      meetParsed,
		MeetErrors:      meetErrors,
		MeetWarnings:    meetWarnings,
		EntriesErrors:   entriesErrors,
		EntriesWarnings: entriesWarnings,
		IOError:         output.IOError,
		Duration:        elapsed,
		CreatedAt:       at.UTC(),
	}
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// CheckRun is the audit record of one checker request. It stores counts,
// never the submitted CSV text.
type CheckRun struct {
	ID              uuid.UUID     `json:"id" db:"id"`
	MeetParsed      bool          `json:"meet_parsed" db:"meet_parsed"`
	MeetErrors      int           `json:"meet_errors" db:"meet_errors"`
	MeetWarnings    int           `json:"meet_warnings" db:"meet_warnings"`
	EntriesErrors   int           `json:"entries_errors" db:"entries_errors"`
	EntriesWarnings int           `json:"entries_warnings" db:"entries_warnings"`
	IOError         *string       `json:"io_error" db:"io_error"`
	Duration        time.Duration `json:"duration" db:"duration_ms"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
}

// Failed reports whether the run found anything that blocks a submission.
func (r CheckRun) Failed() bool {
	return r.IOError != nil || r.MeetErrors > 0 || r.EntriesErrors > 0
}

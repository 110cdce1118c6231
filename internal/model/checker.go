package model

import (
	"encoding/json"

	"github.com/deppfellow/opl-checker/internal/checker"
)

// CheckerInput is the body of POST /api/checker. Both fields must be
// present; empty strings are valid and are left to the engine to judge.
type CheckerInput struct {
	Meet    *string `json:"meet" validate:"required"`
	Entries *string `json:"entries" validate:"required"`
}

func (i *CheckerInput) Validate() error {
	return validate.Struct(i)
}

// MeetText returns the meet.csv text, or "" when absent.
func (i *CheckerInput) MeetText() string {
	if i.Meet == nil {
		return ""
	}
	return *i.Meet
}

// EntriesText returns the entries.csv text, or "" when absent.
func (i *CheckerInput) EntriesText() string {
	if i.Entries == nil {
		return ""
	}
	return *i.Entries
}

// CheckerOutput is the checker response.
//
// In JSON io_error is always present and null when unset, and both message
// lists are always arrays, never null, including for the zero value.
type CheckerOutput struct {
	IOError         *string
	MeetMessages    []checker.Message
	EntriesMessages []checker.Message
}

// CheckerOutputWithIOError is the response for a check that could not read
// its input.
func CheckerOutputWithIOError(err error) CheckerOutput {
	var out CheckerOutput
	out.SetIOError(err)
	return out
}

// CheckerOutputWithMeetMessages starts a response from the meet report.
func CheckerOutputWithMeetMessages(messages []checker.Message) CheckerOutput {
	return CheckerOutput{MeetMessages: messages}
}

// SetIOError records err without touching the message lists.
func (o *CheckerOutput) SetIOError(err error) {
	msg := err.Error()
	o.IOError = &msg
}

type checkerOutputJSON struct {
	IOError         *string           `json:"io_error"`
	MeetMessages    []checker.Message `json:"meet_messages"`
	EntriesMessages []checker.Message `json:"entries_messages"`
}

func (o CheckerOutput) MarshalJSON() ([]byte, error) {
	return json.Marshal(checkerOutputJSON{
		IOError:         o.IOError,
		MeetMessages:    nonNil(o.MeetMessages),
		EntriesMessages: nonNil(o.EntriesMessages),
	})
}

func (o *CheckerOutput) UnmarshalJSON(data []byte) error {
	var raw checkerOutputJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*o = CheckerOutput(raw)
	return nil
}

func nonNil(messages []checker.Message) []checker.Message {
	if messages == nil {
		return []checker.Message{}
	}
	return messages
}

// HasErrors reports whether the output should block a submission.
func (o CheckerOutput) HasErrors() bool {
	if o.IOError != nil {
		return true
	}
	meet := checker.Report{Messages: o.MeetMessages}
	entries := checker.Report{Messages: o.EntriesMessages}
	return meet.HasErrors() || entries.HasErrors()
}

func (o CheckerOutput) TraceAttributes() map[string]interface{} {
	meetErrors, meetWarnings := checker.Report{Messages: o.MeetMessages}.Count()
	entriesErrors, entriesWarnings := checker.Report{Messages: o.EntriesMessages}.Count()

	return map[string]interface{}{
		"checker.io_error":         o.IOError != nil,
		"checker.meet_errors":      meetErrors,
		"checker.meet_warnings":    meetWarnings,
		"checker.entries_errors":   entriesErrors,
		"checker.entries_warnings": entriesWarnings,
	}
}

// Package checker validates the meet.csv and entries.csv files that
// describe a single powerlifting meet.
//
// Problems with the content of a file are reported as Messages inside a
// Report. Checking never stops at the first problem: every row and every
// field is looked at, so a submitter sees everything that needs fixing in
// one pass. Only failures to read the CSV at all are returned as errors.
package checker

import (
	"encoding/json"
	"fmt"
)

// Level is the severity of a Message.
type Level int

const (
	// LevelError marks content that cannot be accepted as-is.
	LevelError Level = iota
	// LevelWarning marks content that is suspicious but acceptable.
	LevelWarning
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "Error"
	case LevelWarning:
		return "Warning"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// Message is a single diagnostic produced while checking a file.
//
// On the wire a Message is an object with exactly one key naming its level:
//
//	{"Error": "Line 3: Invalid Sex 'X'"}
type Message struct {
	Level Level
	Text  string
}

// Errorf builds an error-level Message.
func Errorf(format string, args ...any) Message {
	return Message{Level: LevelError, Text: fmt.Sprintf(format, args...)}
}

// Warningf builds a warning-level Message.
func Warningf(format string, args ...any) Message {
	return Message{Level: LevelWarning, Text: fmt.Sprintf(format, args...)}
}

func (m Message) IsError() bool {
	return m.Level == LevelError
}

func (m Message) String() string {
	return m.Level.String() + ": " + m.Text
}

func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{m.Level.String(): m.Text})
}

func (m *Message) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 1 {
		return fmt.Errorf("checker: message must have exactly one level key, got %d", len(raw))
	}
	for key, text := range raw {
		switch key {
		case "Error":
			m.Level = LevelError
		case "Warning":
			m.Level = LevelWarning
		default:
			return fmt.Errorf("checker: unknown message level %q", key)
		}
		m.Text = text
	}
	return nil
}

// Report collects the messages for one file, in the order they were found.
type Report struct {
	// Name is the file the report is about, e.g. "meet.csv".
	Name     string
	Messages []Message
}

func newReport(name string) Report {
	return Report{Name: name, Messages: []Message{}}
}

func (r *Report) errorf(format string, args ...any) {
	r.Messages = append(r.Messages, Errorf(format, args...))
}

func (r *Report) warningf(format string, args ...any) {
	r.Messages = append(r.Messages, Warningf(format, args...))
}

// errorOn reports an error tied to a 1-based line of the file.
func (r *Report) errorOn(line int, format string, args ...any) {
	r.Messages = append(r.Messages, Errorf("Line %d: %s", line, fmt.Sprintf(format, args...)))
}

func (r *Report) warningOn(line int, format string, args ...any) {
	r.Messages = append(r.Messages, Warningf("Line %d: %s", line, fmt.Sprintf(format, args...)))
}

// HasErrors reports whether any error-level message was recorded.
func (r Report) HasErrors() bool {
	for _, m := range r.Messages {
		if m.IsError() {
			return true
		}
	}
	return false
}

// Count returns the number of errors and warnings in the report.
func (r Report) Count() (errors, warnings int) {
	for _, m := range r.Messages {
		if m.IsError() {
			errors++
		} else {
			warnings++
		}
	}
	return errors, warnings
}

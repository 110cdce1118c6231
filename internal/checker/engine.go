package checker

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Engine checks meet.csv and entries.csv contents. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the clock used to reject meet dates in the future.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New returns an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// table is a CSV file split into its header and data rows.
type table struct {
	header []string
	rows   [][]string
	// lines holds the 1-based file line each row starts on.
	lines []int
	// index maps a column name to its first position in header.
	index map[string]int
}

// readTable parses text as CSV. Rows may have any width; width problems are
// reported as messages by the callers, not as read errors. A leading byte
// order mark is ignored.
func readTable(name, text string) (*table, error) {
	r := csv.NewReader(strings.NewReader(strings.TrimPrefix(text, "\ufeff")))
	r.FieldsPerRecord = -1

	t := &table{index: map[string]int{}}
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		if t.header == nil {
			t.header = record
			continue
		}
		ln, _ := r.FieldPos(0)
		t.rows = append(t.rows, record)
		t.lines = append(t.lines, ln)
	}

	for i, column := range t.header {
		if _, seen := t.index[column]; !seen {
			t.index[column] = i
		}
	}
	return t, nil
}

// checkHeader reports unknown, duplicate and missing columns. It returns
// false when a required column is missing.
func (t *table) checkHeader(report *Report, required []string, known map[string]struct{}) bool {
	seen := map[string]bool{}
	for _, column := range t.header {
		switch {
		case seen[column]:
			report.errorf("Duplicate column '%s'", column)
		case !inSet(known, column):
			report.errorf("Unknown column '%s'", column)
		}
		seen[column] = true
	}

	ok := true
	for _, column := range required {
		if !seen[column] {
			report.errorf("Missing required column '%s'", column)
			ok = false
		}
	}
	return ok
}

// value returns the named column of row, or "" when the column is absent.
func (t *table) value(row []string, column string) string {
	i, ok := t.index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func (t *table) has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// line returns the file line data row i starts on. Blank lines and quoted
// fields spanning several lines are accounted for.
func (t *table) line(i int) int {
	return t.lines[i]
}

package checker

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// Meet is the metadata of a meet as read from a valid meet.csv.
type Meet struct {
	Federation string
	Date       time.Time
	Country    string
	State      string
	Town       string
	Name       string
	RuleSet    []string
}

// MeetOutcome is the result of parsing meet.csv into a Meet: either a
// ParsedMeet or NoMeet. Entries date checks run only against a ParsedMeet.
type MeetOutcome interface {
	meetOutcome()
}

// ParsedMeet carries a Meet that was read successfully, possibly with
// warnings or errors in fields that do not affect its identity.
type ParsedMeet struct {
	Meet Meet
}

// NoMeet means meet.csv was too broken to produce a usable Meet.
type NoMeet struct{}

func (ParsedMeet) meetOutcome() {}
func (NoMeet) meetOutcome()     {}

// MeetCheckResult is the outcome of checking a meet.csv.
type MeetCheckResult struct {
	Report Report
	Meet   MeetOutcome
}

var meetRequired = []string{"Federation", "Date", "MeetCountry", "MeetState", "MeetTown", "MeetName"}

var meetKnown = toSet(append([]string{"RuleSet"}, meetRequired...)...)

// CheckMeet checks the contents of a meet.csv.
//
// The returned error is non-nil only when the text cannot be read as CSV or
// ctx is done. All problems with the content itself are in the Report.
func (e *Engine) CheckMeet(ctx context.Context, text string) (MeetCheckResult, error) {
	report := newReport("meet.csv")
	result := MeetCheckResult{Report: report, Meet: NoMeet{}}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	t, err := readTable(report.Name, text)
	if err != nil {
		return result, err
	}

	if !t.checkHeader(&result.Report, meetRequired, meetKnown) {
		return result, nil
	}

	switch len(t.rows) {
	case 0:
		result.Report.errorf("meet.csv has no data row")
		return result, nil
	case 1:
	default:
		result.Report.errorf("meet.csv must have exactly one data row, found %d", len(t.rows))
		return result, nil
	}

	row := t.rows[0]
	if len(row) != len(t.header) {
		result.Report.errorOn(t.line(0), "Expected %d fields, found %d", len(t.header), len(row))
		return result, nil
	}

	if meet, ok := e.checkMeetRow(&result.Report, t, row); ok {
		result.Meet = ParsedMeet{Meet: meet}
	}
	return result, nil
}

// checkMeetRow validates every field of the meet row. The Meet is usable
// when Federation, Date and MeetCountry are valid.
func (e *Engine) checkMeetRow(report *Report, t *table, row []string) (Meet, bool) {
	usable := true
	meet := Meet{
		Federation: t.value(row, "Federation"),
		Country:    t.value(row, "MeetCountry"),
		State:      t.value(row, "MeetState"),
		Town:       t.value(row, "MeetTown"),
		Name:       t.value(row, "MeetName"),
	}

	switch {
	case meet.Federation == "":
		report.errorf("Federation is empty")
		usable = false
	case !inSet(federations, meet.Federation):
		report.errorf("Unknown federation '%s'", meet.Federation)
		usable = false
	}

	rawDate := t.value(row, "Date")
	date, err := parseDate(rawDate)
	if err != nil {
		report.errorf("Invalid date '%s', expected YYYY-MM-DD", rawDate)
		usable = false
	} else {
		meet.Date = date
		if date.After(e.now()) {
			report.errorf("Date '%s' is in the future", rawDate)
		}
	}

	switch {
	case meet.Country == "":
		report.errorf("MeetCountry is empty")
		usable = false
	case !inSet(countries, meet.Country):
		report.errorf("Unknown MeetCountry '%s'", meet.Country)
		usable = false
	}

	if meet.State != "" {
		if states, ok := statesByCountry[meet.Country]; ok && !inSet(states, meet.State) {
			report.errorf("Unknown MeetState '%s' for country '%s'", meet.State, meet.Country)
		} else if problem := spacingProblem(meet.State); problem != "" {
			report.errorf("MeetState '%s' %s", meet.State, problem)
		}
	}

	if problem := spacingProblem(meet.Town); problem != "" {
		report.errorf("MeetTown '%s' %s", meet.Town, problem)
	}

	switch {
	case meet.Name == "":
		report.errorf("MeetName is empty")
	case spacingProblem(meet.Name) != "":
		report.errorf("MeetName '%s' %s", meet.Name, spacingProblem(meet.Name))
	}
	if meet.Name != "" && !meet.Date.IsZero() && strings.Contains(meet.Name, strconv.Itoa(meet.Date.Year())) {
		report.errorf("MeetName '%s' must not contain the year", meet.Name)
	}
	if meet.Federation != "" && containsWord(meet.Name, meet.Federation) {
		report.warningf("MeetName '%s' should not repeat the federation", meet.Name)
	}

	if raw := t.value(row, "RuleSet"); raw != "" {
		for _, rule := range strings.Fields(raw) {
			if !inSet(ruleSets, rule) {
				report.errorf("Unknown RuleSet '%s'", rule)
				continue
			}
			meet.RuleSet = append(meet.RuleSet, rule)
		}
	}

	return meet, usable
}

func containsWord(text, word string) bool {
	for _, field := range strings.Fields(text) {
		if field == word {
			return true
		}
	}
	return false
}

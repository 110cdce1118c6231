package checker

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one lifter row of an entries.csv that had the right width.
type Entry struct {
	Line      int
	Name      string
	Sex       string
	Equipment string
	Event     string
	Division  string
	Place     string
}

// EntriesCheckResult is the outcome of checking an entries.csv.
type EntriesCheckResult struct {
	Report  Report
	Entries []Entry
}

// lift names one of the three competition lifts and its letter in Event.
type lift struct {
	name  string
	event rune
}

var lifts = []lift{
	{name: "Squat", event: 'S'},
	{name: "Bench", event: 'B'},
	{name: "Deadlift", event: 'D'},
}

func (l lift) attempt(n int) string {
	return fmt.Sprintf("%s%dKg", l.name, n)
}

func (l lift) best() string {
	return "Best3" + l.name + "Kg"
}

var entriesRequired = []string{"Name", "Sex", "Equipment", "Place", "Event"}

var entriesKnown = func() map[string]struct{} {
	columns := append([]string{
		"Age", "BirthDate", "BirthYear", "Division", "WeightClassKg",
		"BodyweightKg", "TotalKg", "Country", "State", "Tested",
	}, entriesRequired...)
	for _, l := range lifts {
		for n := 1; n <= 4; n++ {
			columns = append(columns, l.attempt(n))
		}
		columns = append(columns, l.best())
	}
	return toSet(columns...)
}()

// CheckEntries checks the contents of an entries.csv.
//
// When meet is a ParsedMeet, birth dates, birth years and ages are checked
// against the meet date. With NoMeet those checks are skipped.
func (e *Engine) CheckEntries(ctx context.Context, text string, meet MeetOutcome) (EntriesCheckResult, error) {
	result := EntriesCheckResult{Report: newReport("entries.csv"), Entries: []Entry{}}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	t, err := readTable(result.Report.Name, text)
	if err != nil {
		return result, err
	}

	if !t.checkHeader(&result.Report, entriesRequired, entriesKnown) {
		return result, nil
	}

	if len(t.rows) == 0 {
		result.Report.warningf("entries.csv has no lifters")
		return result, nil
	}

	var meetDate time.Time
	if parsed, ok := meet.(ParsedMeet); ok {
		meetDate = parsed.Meet.Date
	}

	firstSeen := map[string]int{}
	for i, row := range t.rows {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return result, err
			}
		}

		entry, ok := checkEntryRow(&result.Report, t, i, row, meetDate)
		if !ok {
			continue
		}

		key := strings.Join([]string{entry.Name, entry.Division, entry.Equipment, entry.Event, t.value(row, "WeightClassKg")}, "\x00")
		if first, dup := firstSeen[key]; dup {
			result.Report.warningOn(entry.Line, "Lifter '%s' appears more than once in the same category (first on line %d)", entry.Name, first)
		} else {
			firstSeen[key] = entry.Line
		}

		result.Entries = append(result.Entries, entry)
	}

	return result, nil
}

// checkEntryRow validates one lifter row. meetDate is zero when no meet is
// available. It returns false when the row has the wrong width.
func checkEntryRow(report *Report, t *table, rowIndex int, row []string, meetDate time.Time) (Entry, bool) {
	ln := t.line(rowIndex)
	if len(row) != len(t.header) {
		report.errorOn(ln, "Expected %d fields, found %d", len(t.header), len(row))
		return Entry{}, false
	}

	entry := Entry{
		Line:      ln,
		Name:      t.value(row, "Name"),
		Sex:       t.value(row, "Sex"),
		Equipment: t.value(row, "Equipment"),
		Event:     t.value(row, "Event"),
		Division:  t.value(row, "Division"),
		Place:     t.value(row, "Place"),
	}

	if entry.Name == "" {
		report.errorOn(ln, "Name is empty")
	} else if problem := spacingProblem(entry.Name); problem != "" {
		report.errorOn(ln, "Name '%s' %s", entry.Name, problem)
	}

	if !inSet(sexes, entry.Sex) {
		report.errorOn(ln, "Invalid Sex '%s'", entry.Sex)
	}
	if !inSet(equipment, entry.Equipment) {
		report.errorOn(ln, "Invalid Equipment '%s'", entry.Equipment)
	}

	eventValid := inSet(events, entry.Event)
	if !eventValid {
		report.errorOn(ln, "Invalid Event '%s'", entry.Event)
	}

	placed := false
	if n, err := strconv.Atoi(entry.Place); err == nil {
		if n <= 0 {
			report.errorOn(ln, "Invalid Place '%s'", entry.Place)
		} else {
			placed = true
		}
	} else if !inSet(nonPlacings, entry.Place) {
		report.errorOn(ln, "Invalid Place '%s'", entry.Place)
	}

	if problem := spacingProblem(entry.Division); problem != "" {
		report.errorOn(ln, "Division '%s' %s", entry.Division, problem)
	}

	checkLifts(report, t, ln, row, entry.Event, eventValid, placed, entry.Place)
	checkBodyweight(report, t, ln, row)
	checkLifterDates(report, t, ln, row, meetDate)

	if country := t.value(row, "Country"); country != "" {
		if !inSet(countries, country) {
			report.errorOn(ln, "Unknown Country '%s'", country)
		} else if state := t.value(row, "State"); state != "" {
			if states, ok := statesByCountry[country]; ok && !inSet(states, state) {
				report.errorOn(ln, "Unknown State '%s' for country '%s'", state, country)
			}
		}
	}

	if value := t.value(row, "Tested"); value != "" && !inSet(tested, value) {
		report.errorOn(ln, "Invalid Tested '%s', expected 'Yes' or 'No'", value)
	}

	return entry, true
}

// checkLifts validates attempts, best lifts and the total.
func checkLifts(report *Report, t *table, ln int, row []string, event string, eventValid, placed bool, place string) {
	sum := decimal.Zero
	complete := eventValid

	for _, l := range lifts {
		best, hasBest, hasData := checkLift(report, t, ln, row, l)

		inEvent := strings.ContainsRune(event, l.event)
		if hasData && eventValid && !inEvent {
			name := strings.ToLower(l.name)
			report.errorOn(ln, "Event '%s' has no %s, but %s data is present", event, name, name)
		}
		if inEvent {
			if hasBest && best.IsPositive() {
				sum = sum.Add(best)
			} else {
				complete = false
			}
		}
	}

	if !t.has("TotalKg") {
		return
	}

	raw := t.value(row, "TotalKg")
	// Guests may or may not have a total; disqualified and no-show lifters
	// never do.
	excluded := inSet(withoutTotal, place)
	if raw == "" {
		if placed {
			report.errorOn(ln, "Lifter with Place '%s' has no TotalKg", place)
		}
		return
	}

	total, err := parseWeight(raw)
	switch {
	case err != nil:
		report.errorOn(ln, "Invalid TotalKg '%s'", raw)
	case !total.IsPositive():
		report.errorOn(ln, "TotalKg '%s' must be positive", raw)
	case excluded:
		report.errorOn(ln, "Lifter with Place '%s' must not have a TotalKg", place)
	case complete && !total.Equal(sum):
		report.errorOn(ln, "TotalKg '%s' does not match the sum of best lifts '%s'", raw, sum.String())
	}
}

// checkLift validates the attempt and Best3 columns of one lift. It returns
// the best lift (given or derived from attempts), whether there is one, and
// whether any data for the lift is present.
func checkLift(report *Report, t *table, ln int, row []string, l lift) (best decimal.Decimal, hasBest, hasData bool) {
	var bestAttempt decimal.Decimal
	anyAttempt, anySuccess := false, false

	for n := 1; n <= 4; n++ {
		column := l.attempt(n)
		raw := t.value(row, column)
		if raw == "" {
			continue
		}
		hasData = true

		w, err := parseWeight(raw)
		if err != nil {
			report.errorOn(ln, "Invalid %s '%s'", column, raw)
			continue
		}
		if w.IsZero() {
			report.errorOn(ln, "%s must not be zero, leave it empty instead", column)
			continue
		}
		// Fourth attempts are record attempts and never count towards Best3.
		if n == 4 {
			continue
		}

		anyAttempt = true
		if w.IsPositive() && (!anySuccess || w.GreaterThan(bestAttempt)) {
			bestAttempt = w
			anySuccess = true
		}
	}

	column := l.best()
	raw := t.value(row, column)
	if raw == "" {
		if anySuccess {
			return bestAttempt, true, hasData
		}
		return decimal.Zero, false, hasData
	}
	hasData = true

	w, err := parseWeight(raw)
	switch {
	case err != nil:
		report.errorOn(ln, "Invalid %s '%s'", column, raw)
		return decimal.Zero, false, hasData
	case w.IsZero():
		report.errorOn(ln, "%s must not be zero, leave it empty instead", column)
		return decimal.Zero, false, hasData
	}

	if anyAttempt {
		switch {
		case anySuccess && !w.Equal(bestAttempt):
			report.errorOn(ln, "%s '%s' does not match the best attempt '%s'", column, raw, bestAttempt.String())
		case !anySuccess && w.IsPositive():
			report.errorOn(ln, "%s '%s' is positive, but every attempt failed", column, raw)
		}
	}
	return w, true, hasData
}

func checkBodyweight(report *Report, t *table, ln int, row []string) {
	var bodyweight decimal.Decimal
	hasBodyweight := false

	if raw := t.value(row, "BodyweightKg"); raw != "" {
		w, err := parseWeight(raw)
		if err != nil || !w.IsPositive() {
			report.errorOn(ln, "Invalid BodyweightKg '%s'", raw)
		} else {
			bodyweight, hasBodyweight = w, true
		}
	}

	raw := t.value(row, "WeightClassKg")
	if raw == "" {
		return
	}
	class, err := parseWeightClass(raw)
	if err != nil {
		report.errorOn(ln, "Invalid WeightClassKg '%s'", raw)
		return
	}
	if !hasBodyweight {
		return
	}
	if class.plus && !bodyweight.GreaterThan(class.limit) {
		report.errorOn(ln, "BodyweightKg '%s' is too light for WeightClassKg '%s'", bodyweight.String(), raw)
	}
	if !class.plus && bodyweight.GreaterThan(class.limit) {
		report.errorOn(ln, "BodyweightKg '%s' exceeds WeightClassKg '%s'", bodyweight.String(), raw)
	}
}

// checkLifterDates validates Age, BirthDate and BirthYear, and their
// consistency with each other and, when meetDate is set, with the meet.
func checkLifterDates(report *Report, t *table, ln int, row []string, meetDate time.Time) {
	var (
		lifterAge    age
		hasAge       bool
		birthDate    time.Time
		hasBirthDate bool
		birthYear    int
		hasBirthYear bool
	)

	rawAge := t.value(row, "Age")
	if rawAge != "" {
		a, err := parseAge(rawAge)
		if err != nil {
			report.errorOn(ln, "Invalid Age '%s'", rawAge)
		} else {
			lifterAge, hasAge = a, true
		}
	}

	rawBirthDate := t.value(row, "BirthDate")
	if rawBirthDate != "" {
		d, err := parseDate(rawBirthDate)
		if err != nil {
			report.errorOn(ln, "Invalid BirthDate '%s', expected YYYY-MM-DD", rawBirthDate)
		} else {
			birthDate, hasBirthDate = d, true
		}
	}

	rawBirthYear := t.value(row, "BirthYear")
	if rawBirthYear != "" {
		y, err := strconv.Atoi(rawBirthYear)
		if err != nil || len(rawBirthYear) != 4 || y < 1900 {
			report.errorOn(ln, "Invalid BirthYear '%s'", rawBirthYear)
		} else {
			birthYear, hasBirthYear = y, true
		}
	}

	if hasBirthDate && hasBirthYear && birthDate.Year() != birthYear {
		report.errorOn(ln, "BirthDate '%s' and BirthYear '%s' disagree", rawBirthDate, rawBirthYear)
	}

	if meetDate.IsZero() {
		return
	}
	meetText := meetDate.Format(dateLayout)

	if hasBirthDate && !birthDate.Before(meetDate) {
		report.errorOn(ln, "BirthDate '%s' is not before the meet date '%s'", rawBirthDate, meetText)
		return
	}
	if hasBirthYear && birthYear > meetDate.Year() {
		report.errorOn(ln, "BirthYear '%s' is after the meet year %d", rawBirthYear, meetDate.Year())
		return
	}
	if !hasAge {
		return
	}

	// Ages the lifter could have had on the meet date, according to Age.
	claimed := []int{lifterAge.years}
	if lifterAge.approximate {
		claimed = append(claimed, lifterAge.years+1)
	}

	switch {
	case hasBirthDate:
		expected := ageOn(birthDate, meetDate)
		if !containsInt(claimed, expected) {
			report.errorOn(ln, "Age '%s' does not match BirthDate '%s' (expected %d on %s)", rawAge, rawBirthDate, expected, meetText)
		}
	case hasBirthYear:
		diff := meetDate.Year() - birthYear
		if !containsInt(claimed, diff) && !containsInt(claimed, diff-1) {
			report.errorOn(ln, "Age '%s' does not match BirthYear '%s' (expected %d or %d in %d)", rawAge, rawBirthYear, diff-1, diff, meetDate.Year())
		}
	}
}

func containsInt(values []int, want int) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

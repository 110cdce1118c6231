package checker

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayout is the only accepted date format in both files.
const dateLayout = "2006-01-02"

var federations = toSet(
	"AAPF", "AAU", "ACHIPO", "ADFPA", "AEP", "AFPF", "AIPF", "APA", "APF",
	"APU", "AsianPF", "BP", "BPU", "CAPO", "CPF", "CPL", "CPU", "EPA", "EPF",
	"FEMEPO", "FFForce", "FIPL", "GPA", "GPC", "IPA", "IPF", "IPL", "KPF",
	"NAPF", "NASA", "NIPF", "NZPF", "OceaniaPF", "PA", "RAW", "RPS", "RPU",
	"SPF", "SSF", "SVNL", "THSPA", "THSWPA", "UPA", "USAPL", "USPA",
	"USPF", "WABDL", "WPC", "WPF", "WRPF", "WUAP", "XPC",
)

var countries = toSet(
	"Argentina", "Australia", "Austria", "Belarus", "Belgium", "Brazil",
	"Bulgaria", "Canada", "Chile", "China", "Colombia", "Croatia", "Czechia",
	"Denmark", "Ecuador", "Egypt", "England", "Estonia", "Finland", "France",
	"Germany", "Greece", "Hungary", "Iceland", "India", "Indonesia", "Iran",
	"Ireland", "Israel", "Italy", "Japan", "Kazakhstan", "Latvia",
	"Lithuania", "Luxembourg", "Malaysia", "Mexico", "Netherlands",
	"New Zealand", "Northern Ireland", "Norway", "Peru", "Philippines",
	"Poland", "Portugal", "Romania", "Russia", "Scotland", "Serbia",
	"Singapore", "Slovakia", "Slovenia", "South Africa", "South Korea",
	"Spain", "Sweden", "Switzerland", "Taiwan", "Thailand", "Turkey",
	"UK", "Ukraine", "USA", "Uzbekistan", "Venezuela", "Vietnam", "Wales",
)

// statesByCountry lists the valid MeetState/State codes for countries where
// the value is checked. Other countries accept any well-formed value.
var statesByCountry = map[string]map[string]struct{}{
	"USA": toSet(
		"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL", "GA", "HI",
		"ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD", "MA", "MI", "MN",
		"MS", "MO", "MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "OH",
		"OK", "OR", "PA", "RI", "SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA",
		"WV", "WI", "WY", "PR", "GU", "VI",
	),
	"Canada": toSet(
		"AB", "BC", "MB", "NB", "NL", "NT", "NS", "NU", "ON", "PE", "QC", "SK", "YT",
	),
	"Australia": toSet(
		"ACT", "NSW", "NT", "QLD", "SA", "TAS", "VIC", "WA",
	),
}

var ruleSets = toSet(
	"CombineRawAndWraps", "CombineSingleAndMulti", "CombineAllEquipment",
	"FourthAttemptsMayLower",
)

var sexes = toSet("M", "F", "Mx")

var equipment = toSet("Raw", "Wraps", "Single-ply", "Multi-ply", "Unlimited", "Straps")

var events = toSet("S", "B", "D", "SB", "SD", "BD", "SBD")

var tested = toSet("Yes", "No")

// nonPlacings are the Place values for lifters without a numeric placing.
var nonPlacings = toSet("G", "DQ", "DD", "NS")

// withoutTotal are the Place values that rule out a TotalKg.
var withoutTotal = toSet("DQ", "DD", "NS")

func toSet(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func inSet(set map[string]struct{}, value string) bool {
	_, ok := set[value]
	return ok
}

// spacingProblem describes bad whitespace in a free-text value, or returns
// "" when the value is well-formed.
func spacingProblem(value string) string {
	switch {
	case value != strings.TrimSpace(value):
		return "has leading or trailing whitespace"
	case strings.Contains(value, "  "):
		return "contains consecutive spaces"
	case strings.ContainsAny(value, "\t\r\n"):
		return "contains a tab or line break"
	}
	return ""
}

// parseDate parses a strict YYYY-MM-DD date.
func parseDate(value string) (time.Time, error) {
	if len(value) != len(dateLayout) {
		return time.Time{}, fmt.Errorf("invalid date %q", value)
	}
	return time.Parse(dateLayout, value)
}

// parseWeight parses a weight in kilograms. Weights carry at most two
// decimal places.
func parseWeight(value string) (decimal.Decimal, error) {
	if strings.ContainsAny(value, "eE+ ") {
		return decimal.Zero, fmt.Errorf("invalid weight %q", value)
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid weight %q", value)
	}
	if d.Exponent() < -2 {
		return decimal.Zero, fmt.Errorf("weight %q has more than two decimal places", value)
	}
	return d, nil
}

// weightClass is a parsed WeightClassKg value such as "93" or "120+".
type weightClass struct {
	limit decimal.Decimal
	plus  bool
}

func parseWeightClass(value string) (weightClass, error) {
	plus := strings.HasSuffix(value, "+")
	limit, err := parseWeight(strings.TrimSuffix(value, "+"))
	if err != nil || !limit.IsPositive() {
		return weightClass{}, fmt.Errorf("invalid weight class %q", value)
	}
	return weightClass{limit: limit, plus: plus}, nil
}

// age is a parsed Age value. Approximate ages are written as "N.5" and mean
// the lifter was either N or N+1 on the meet date.
type age struct {
	years       int
	approximate bool
}

func parseAge(value string) (age, error) {
	whole, frac, found := strings.Cut(value, ".")
	if found && frac != "5" {
		return age{}, fmt.Errorf("invalid age %q", value)
	}
	if whole == "" || whole[0] < '0' || whole[0] > '9' {
		return age{}, fmt.Errorf("invalid age %q", value)
	}
	years, err := strconv.Atoi(whole)
	if err != nil || years >= 100 || (years == 0 && !found) {
		return age{}, fmt.Errorf("invalid age %q", value)
	}
	return age{years: years, approximate: found}, nil
}

// ageOn returns the age in whole years of someone born on birth, on date.
func ageOn(birth, date time.Time) int {
	years := date.Year() - birth.Year()
	if date.Month() < birth.Month() || (date.Month() == birth.Month() && date.Day() < birth.Day()) {
		years--
	}
	return years
}

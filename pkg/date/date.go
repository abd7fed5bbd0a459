// Package date normalizes GEDCOM date values into structured dates with a
// short display string.
//
// Both the Gregorian and the French Republican calendars are understood.
// Unparseable values never produce an error: they degrade to an invalid
// sentinel whose Display is either the original text or empty, depending on
// [Options.ShowInvalidDates].
package date

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Calendar identifies the calendar a date was written in.
type Calendar uint8

const (
	Gregorian Calendar = iota
	Republican
)

// Qualifier is the approximation marker attached to a date.
type Qualifier uint8

const (
	Exact Qualifier = iota
	About
	Before
	After
)

// Symbol returns the display prefix of the qualifier.
func (q Qualifier) Symbol() string {
	switch q {
	case About:
		return "~"
	case Before:
		return "<"
	case After:
		return ">"
	}
	return ""
}

// Calendar escapes recognised at the start of a value.
const (
	escapeGregorian  = "@#DGREGORIAN@"
	escapeRepublican = "@#DFRENCH R@"
)

// republicanEpoch is added to a Republican year to get the Gregorian year in
// which it started.
const republicanEpoch = 1792

var qualifiers = map[string]Qualifier{
	"ABT": About,
	"BEF": Before,
	"AFT": After,
}

var (
	gregorianMonths  = []string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}
	republicanMonths = []string{"VEND", "BRUM", "FRIM", "NIVO", "PLUV", "VENT", "GERM", "FLOR", "PRAI", "MESS", "THER", "FRUC", "COMP"}
)

// Options controls how dates are displayed.
type Options struct {
	// ShowInvalidDates keeps the raw value as Display for unparseable dates.
	ShowInvalidDates bool `json:"show_invalid_dates" toml:"show_invalid_dates"`
	// ShowYearsOnly reduces every display to the (qualified) year.
	ShowYearsOnly bool `json:"show_years_only" toml:"show_years_only"`
}

// Date is a normalized GEDCOM date.
//
// The zero value is the "no date" sentinel. Year is always the Gregorian year
// even for Republican dates; Display keeps the Republican numeral.
type Date struct {
	Year      int       `json:"year,omitempty"`
	Month     int       `json:"month,omitempty"`
	Day       int       `json:"day,omitempty"`
	Calendar  Calendar  `json:"calendar,omitempty"`
	Qualifier Qualifier `json:"qualifier,omitempty"`
	Display   string    `json:"display,omitempty"`

	// HasYear is set once a year was parsed, whatever the qualifier.
	HasYear bool `json:"has_year,omitempty"`
	// YearLegit is false for BEF/AFT dates: the year bounds the event but
	// cannot anchor age computations.
	YearLegit bool `json:"year_legit,omitempty"`
	// Invalid marks a value that could not be parsed.
	Invalid bool `json:"invalid,omitempty"`
}

// AnchorYear returns the year when it is reliable enough to compute ages.
func (d Date) AnchorYear() (int, bool) {
	if d.HasYear && d.YearLegit {
		return d.Year, true
	}
	return 0, false
}

// IsZero reports whether d is the "no date" sentinel.
func (d Date) IsZero() bool { return d == Date{} }

// IsInvalid reports whether d came from an unparseable value.
func (d Date) IsInvalid() bool { return d.Invalid }

func invalid(raw string, opts Options) Date {
	d := Date{Invalid: true}
	if opts.ShowInvalidDates {
		d.Display = raw
	}
	return d
}

// Normalize parses a GEDCOM date value.
//
// Accepted shapes, after an optional calendar escape and an optional
// ABT/BEF/AFT qualifier, are "YEAR", "MONTH YEAR" and "DAY MONTH YEAR".
// The year must be a plain decimal number. Gregorian day/month combinations
// are checked against the real calendar. Republican days are accepted as
// written: the complementary days and the Republican leap rule are not
// modelled.
func Normalize(raw string, opts Options) Date {
	s := strings.TrimSpace(raw)

	cal := Gregorian
	switch {
	case strings.HasPrefix(s, escapeRepublican):
		cal = Republican
		s = s[len(escapeRepublican):]
	case strings.HasPrefix(s, escapeGregorian):
		s = s[len(escapeGregorian):]
	}

	fields := strings.Fields(s)
	if len(fields) == 0 {
		return invalid(raw, opts)
	}

	d := Date{Calendar: cal, YearLegit: true}
	if q, ok := qualifiers[fields[0]]; ok {
		if len(fields) == 1 {
			return invalid(raw, opts)
		}
		d.Qualifier = q
		d.YearLegit = q == About
		fields = fields[1:]
	}
	if len(fields) > 3 {
		return invalid(raw, opts)
	}

	year, ok := parseCanonicalInt(fields[len(fields)-1])
	if !ok {
		return invalid(raw, opts)
	}
	if cal == Republican && year < 1 {
		return invalid(raw, opts)
	}
	d.HasYear = true
	d.Year = year
	if cal == Republican {
		d.Year = year + republicanEpoch
	}

	yearDisplay := strconv.Itoa(year)
	if cal == Republican {
		yearDisplay = roman(year)
	}
	prefix := d.Qualifier.Symbol()

	if len(fields) == 1 {
		d.Display = prefix + yearDisplay
		return d
	}

	months := gregorianMonths
	if cal == Republican {
		months = republicanMonths
	}
	month := indexOf(months, fields[len(fields)-2]) + 1
	if month == 0 {
		return invalid(raw, opts)
	}
	d.Month = month

	if len(fields) == 3 {
		day, err := strconv.Atoi(fields[0])
		if err != nil || day < 1 {
			return invalid(raw, opts)
		}
		if cal == Gregorian && !validGregorian(year, month, day) {
			return invalid(raw, opts)
		}
		d.Day = day
	}

	switch {
	case opts.ShowYearsOnly:
		d.Display = prefix + yearDisplay
	case d.Day == 0:
		d.Display = fmt.Sprintf("%s%02d/%s", prefix, d.Month, yearDisplay)
	default:
		d.Display = fmt.Sprintf("%s%02d/%02d/%s", prefix, d.Day, d.Month, yearDisplay)
	}
	return d
}

// parseCanonicalInt accepts only the canonical decimal form of a
// non-negative integer, so "1850" parses but "01850" and "1850a" do not.
func parseCanonicalInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || strconv.Itoa(n) != s {
		return 0, false
	}
	return n, true
}

func validGregorian(year, month, day int) bool {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Day() == day && int(t.Month()) == month
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

var romanNumerals = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

// roman renders a positive integer as a Roman numeral.
func roman(n int) string {
	var b strings.Builder
	for _, r := range romanNumerals {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String()
}

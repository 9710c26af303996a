package parser

import (
	"regexp"
	"strings"
	"time"
)

// dateLayouts is tried in order and the first successful parse wins.
// Both month-day and day-month numeric forms appear, so the ordering
// here resolves the MM/DD vs DD/MM ambiguity: a fixed priority, not
// locale detection. Changing the order changes parses silently; keep it
// stable.
var dateLayouts = []string{
	"2 Jan 2006",
	"Jan 2 2006",
	"2 January 2006",
	"January 2 2006",
	"1/2/2006",
	"2/1/2006",
	"2006-1-2",
	"2-1-2006",
	"Jan 2, 2006",
	"2 Jan, 2006",
	"2-Jan-2006",
	"Jan-2-2006",
	"2.1.2006",
}

var digitRunRe = regexp.MustCompile(`\d+`)

// DateNormalizer converts the heterogeneous date strings found in
// statement text into calendar dates. It never fails: unparseable input
// yields the current date as a sentinel, keeping the rest of the parse
// alive at the cost of a wrong date on that one record.
type DateNormalizer struct {
	now func() time.Time
}

// NewDateNormalizer returns a normalizer using the wall clock for the
// sentinel date and the year clamp.
func NewDateNormalizer() *DateNormalizer {
	return &DateNormalizer{now: time.Now}
}

// Normalize parses s into a date. Layouts are tried in priority order;
// if none match, the first three digit runs are read positionally as
// day, month, year. A parsed year beyond the current year is clamped to
// the current year, which guards against misread century digits.
func (n *DateNormalizer) Normalize(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return n.sentinel()
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return n.clampYear(t)
	}

	if t, ok := n.fromDigits(s); ok {
		return n.clampYear(t)
	}

	return n.sentinel()
}

// fromDigits interprets the first three digit runs as day, month, year.
// Two-digit years below 50 land in the 2000s, the rest in the 1900s.
func (n *DateNormalizer) fromDigits(s string) (time.Time, bool) {
	runs := digitRunRe.FindAllString(s, 3)
	if len(runs) < 3 {
		return time.Time{}, false
	}

	day := atoiSafe(runs[0])
	month := atoiSafe(runs[1])
	year := atoiSafe(runs[2])
	if year < 100 {
		if year < 50 {
			year += 2000
		} else {
			year += 1900
		}
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes Feb 30 into March; reject anything that moved.
	if t.Day() != day || t.Month() != time.Month(month) {
		return time.Time{}, false
	}
	return t, true
}

func (n *DateNormalizer) clampYear(t time.Time) time.Time {
	if year := n.now().Year(); t.Year() > year {
		return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return t
}

func (n *DateNormalizer) sentinel() time.Time {
	now := n.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func atoiSafe(s string) int {
	v := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0
		}
		v = v*10 + int(c-'0')
		if v > 1<<30 {
			return 0
		}
	}
	return v
}

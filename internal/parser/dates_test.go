package parser

import (
	"testing"
	"time"
)

func fixedNormalizer() *DateNormalizer {
	return &DateNormalizer{now: func() time.Time {
		return time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	}}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalizeDateFormats(t *testing.T) {
	n := fixedNormalizer()
	tests := []struct {
		in   string
		want time.Time
	}{
		{"06 Nov 2024", date(2024, time.November, 6)},
		{"Nov 06 2024", date(2024, time.November, 6)},
		{"06 November 2024", date(2024, time.November, 6)},
		{"November 06 2024", date(2024, time.November, 6)},
		{"2024-11-06", date(2024, time.November, 6)},
		{"06-11-2024", date(2024, time.November, 6)},
		{"Nov 06, 2024", date(2024, time.November, 6)},
		{"06 Nov, 2024", date(2024, time.November, 6)},
		{"06-Nov-2024", date(2024, time.November, 6)},
		{"Nov-06-2024", date(2024, time.November, 6)},
		{"06.11.2024", date(2024, time.November, 6)},
		{"6 Jan 2023", date(2023, time.January, 6)},
	}
	for _, tt := range tests {
		if got := n.Normalize(tt.in); !got.Equal(tt.want) {
			t.Errorf("Normalize(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeDateSlashPriority(t *testing.T) {
	// Slash dates resolve month-first by list order. 06/11/2024 is
	// June 11, not November 6. Documented ambiguity, not a bug.
	n := fixedNormalizer()
	if got := n.Normalize("06/11/2024"); !got.Equal(date(2024, time.June, 11)) {
		t.Errorf("Normalize(06/11/2024) = %v, want 2024-06-11", got)
	}
	if got := n.Normalize("11/06/2024"); !got.Equal(date(2024, time.November, 6)) {
		t.Errorf("Normalize(11/06/2024) = %v, want 2024-11-06", got)
	}
}

func TestNormalizeDateDigitFallback(t *testing.T) {
	n := fixedNormalizer()
	tests := []struct {
		in   string
		want time.Time
	}{
		// Digit runs read positionally as day, month, year.
		{"on 06 11 2024", date(2024, time.November, 6)},
		// Two-digit years below 50 are 2000s, the rest 1900s.
		{"06 11 24", date(2024, time.November, 6)},
		{"06 11 99", date(1999, time.November, 6)},
	}
	for _, tt := range tests {
		if got := n.Normalize(tt.in); !got.Equal(tt.want) {
			t.Errorf("Normalize(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeDateSentinel(t *testing.T) {
	n := fixedNormalizer()
	today := date(2025, time.June, 15)

	for _, in := range []string{"", "no digits here", "31 02 2024", "99 99 2024"} {
		if got := n.Normalize(in); !got.Equal(today) {
			t.Errorf("Normalize(%q) = %v, want sentinel %v", in, got, today)
		}
	}
}

func TestNormalizeDateYearClamp(t *testing.T) {
	n := fixedNormalizer()
	if got := n.Normalize("06-11-2030"); !got.Equal(date(2025, time.November, 6)) {
		t.Errorf("future year not clamped: got %v", got)
	}
}

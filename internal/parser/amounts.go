package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	trailingMarkerRe = regexp.MustCompile(`(?i)\(?\s*(dr|cr|debit|credit)\s*\)?\s*$`)
	currencyRe       = regexp.MustCompile(`(?i)rs\.?|inr|[₹$£€,\s]`)
)

// NormalizeAmount converts a captured amount string into a signed value.
// marker is the explicitly captured Dr/Cr tag, if the pattern had one;
// when empty, a marker embedded in the amount text itself ("1,234.56(Cr)")
// is used instead. A debit marker forces the value negative and a credit
// marker positive, overriding any sign in the numeric text. With no
// marker at all the parsed sign stands. Unparseable text and the dash
// placeholder normalize to zero, which upstream treats as "no amount".
func NormalizeAmount(text, marker string) float64 {
	s := strings.TrimSpace(text)
	if s == "" || s == "-" {
		return 0
	}

	if marker == "" {
		if m := trailingMarkerRe.FindStringSubmatch(s); m != nil {
			marker = m[1]
			s = strings.TrimSpace(s[:len(s)-len(m[0])])
		}
	}

	s = currencyRe.ReplaceAllString(s, "")
	if s == "" || s == "-" {
		return 0
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}

	switch strings.ToUpper(strings.TrimSpace(marker)) {
	case "DR", "DEBIT", "PAID":
		value = -math.Abs(value)
	case "CR", "CREDIT", "RECEIVED":
		value = math.Abs(value)
	}
	return value
}

package parser

import (
	"regexp"
	"strings"
)

// Candidate is a raw pattern match before date and amount resolution.
// Marker holds an explicit Dr/Cr tag when the template captured one.
// Withdrawal and Deposit are only set by column-layout templates, where
// the debit and credit amounts live in separate columns.
type Candidate struct {
	DateText    string
	Description string
	AmountText  string
	Marker      string
	BalanceText string
	Withdrawal  string
	Deposit     string
}

// Template is one named statement-line pattern. Templates in a profile
// are all applied to every page; recall is favored over precision and
// duplicate candidates are collapsed later by the set builder.
type Template struct {
	Name string
	Re   *regexp.Regexp
}

// Profile bundles the templates and text preprocessing for one issuer
// family. Profiles are immutable after construction and safe to share
// across concurrent parses.
type Profile struct {
	Name       string
	Templates  []Template
	Preprocess func(string) string
}

const monthAbbr = `Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec`

var (
	// Month-name-first lines with an optional explicit type tag and a
	// currency-prefixed amount: "Nov 06, 2024 Salary Credit CREDIT ₹55,000.00".
	narrativeTemplate = Template{
		Name: "narrative",
		Re: regexp.MustCompile(`(?P<date>(?:` + monthAbbr + `)\s*\d{1,2},\s*\d{4})` +
			`(?P<description>.*?)` +
			`(?P<type>DEBIT|CREDIT|Dr|Cr)?\s*` +
			`(?:₹|Rs\.?|INR)\s*(?P<amount>[\d,]+\.?\d*)`),
	}

	// Day-first month-name lines with a signed or unsigned amount:
	// "06 Nov 2024 Coffee Day 450.00".
	dayMonthTemplate = Template{
		Name: "day-month",
		Re: regexp.MustCompile(`(?P<date>\d{1,2}\s*(?:` + monthAbbr + `)\s*\d{4})` +
			`(?P<description>.*?)` +
			`(?P<amount>[-+]?₹?\s*[\d,]+\.?\d*)`),
	}

	// Slash-separated numeric dates with a currency-prefixed amount:
	// "11/06/2024 Electricity bill Rs. 1,200".
	numericTemplate = Template{
		Name: "numeric-date",
		Re: regexp.MustCompile(`(?P<date>\d{1,2}/\d{1,2}/\d{4})` +
			`(?P<description>.*?)` +
			`(?:₹|Rs\.?|INR)\s*(?P<amount>[\d,]+(?:\.\d{2})?)`),
	}

	// Dash-date lines with the amount tagged "(Cr)" or "(Dr)" and an
	// optional running balance: "06-11-2024 SOME SHOP 450.00(Dr) 10250.00".
	parenthesizedTemplate = Template{
		Name: "parenthesized",
		Re: regexp.MustCompile(`(?P<date>\d{2}-\d{2}-\d{4})\s+` +
			`(?P<description>[^(]+?)\s+` +
			`(?P<amount>[\d,]+\.\d{2})\s*\((?P<type>Cr|Dr)\)` +
			`(?:\s+(?P<balance>-?[\d,]+\.\d{2}))?`),
	}

	// Transaction-method-prefixed lines (UPI, IMPS, NEFT, ATM, POS)
	// with a parenthesized-marker amount.
	referenceTemplate = Template{
		Name: "reference",
		Re: regexp.MustCompile(`(?P<date>\d{2}-\d{2}-\d{4})\s+` +
			`(?P<description>(?:UPI|IMPS|NEFT|ATM|POS)[^0-9]*?)\s*` +
			`(?P<amount>[\d,]+\.\d{2})\s*\((?P<type>Cr|Dr)\)` +
			`(?:\s+(?P<balance>[\d,]+\.\d{2}))?`),
	}

	// UPI app exports (Paytm, PhonePe, Google Pay) timestamp each entry
	// and lead with Paid or Received instead of tagging the amount.
	appExportTemplate = Template{
		Name: "app-export",
		Re: regexp.MustCompile(`(?P<date>(?:` + monthAbbr + `)\s+\d{1,2},?\s+\d{4})\s+` +
			`(?:\d{1,2}:\d{2}\s*(?:AM|PM)?\s*)?` +
			`(?P<type>CREDIT|DEBIT|Paid|Received)?\s*` +
			`(?P<description>.*?)` +
			`(?:₹|Rs\.?|INR)\s*(?P<amount>[\d,]+(?:\.\d{2})?)`),
	}

	// Column layouts put withdrawal, deposit, and balance in separate
	// amount columns with an optional reference token between.
	columnsTemplate = Template{
		Name: "columns",
		Re: regexp.MustCompile(`(?P<date>\d{2}-\d{2}-\d{4})\s+` +
			`(?P<description>[^0-9]+?)\s+` +
			`(?:[A-Z0-9]+\s+)?` +
			`(?P<withdrawal>[\d,]+\.\d{2})?\s+` +
			`(?P<deposit>[\d,]+\.\d{2})?\s+` +
			`(?P<balance>[\d,]+\.\d{2})`),
	}
)

// GenericProfile matches the narrative and numeric layouts seen across
// issuers, plus the tagged-amount layouts, with no preprocessing.
func GenericProfile() *Profile {
	return &Profile{
		Name: "generic",
		Templates: []Template{
			parenthesizedTemplate,
			referenceTemplate,
			narrativeTemplate,
			dayMonthTemplate,
			numericTemplate,
		},
	}
}

// KotakProfile targets Kotak-style statements: dash dates, Dr/Cr tags,
// and column layouts, with text preprocessing to undo the layout quirks
// of that issuer's PDF output.
func KotakProfile() *Profile {
	return &Profile{
		Name: "kotak",
		Templates: []Template{
			columnsTemplate,
			parenthesizedTemplate,
			referenceTemplate,
		},
		Preprocess: preprocessKotak,
	}
}

// UPIProfile targets payment-app exports, where entries carry a
// timestamp and Paid/Received wording rather than bank column layouts.
func UPIProfile() *Profile {
	return &Profile{
		Name: "upi",
		Templates: []Template{
			appExportTemplate,
			dayMonthTemplate,
			numericTemplate,
		},
	}
}

// DetectProfile picks the issuer profile from the statement text.
func DetectProfile(text string) *Profile {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "kotak") {
		return KotakProfile()
	}
	for _, app := range []string{"paytm", "phonepe", "google pay"} {
		if strings.Contains(lower, app) {
			return UPIProfile()
		}
	}
	return GenericProfile()
}

var (
	pageFooterRe  = regexp.MustCompile(`Page \d+ of \d+`)
	stmtPeriodRe  = regexp.MustCompile(`Statement Period:.*`)
	dashDateRe    = regexp.MustCompile(`(\d{2}-\d{2}-\d{4})`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
	noiseLineSubs = []string{
		"Date Narration",
		"Withdrawal(Dr)/",
		"Statement Summary",
		"End of Statement",
		"Page",
	}
)

// preprocessKotak flattens the page text and re-breaks it so every
// transaction starts its own line. Kotak PDFs wrap narrations across
// physical lines and abbreviate the Dr/Cr tags inconsistently.
func preprocessKotak(text string) string {
	text = pageFooterRe.ReplaceAllString(text, "")
	text = stmtPeriodRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "Dr.", "Dr")
	text = strings.ReplaceAll(text, "Cr.", "Cr")
	text = whitespaceRe.ReplaceAllString(text, " ")
	text = dashDateRe.ReplaceAllString(text, "\n$1")
	return text
}

// filterNoiseLines drops header and footer lines before matching.
func filterNoiseLines(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if isNoiseLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func isNoiseLine(line string) bool {
	for _, sub := range noiseLineSubs {
		if strings.Contains(line, sub) {
			return true
		}
	}
	return false
}

// Match applies the template to text and returns one candidate per hit.
func (t Template) Match(text string) []Candidate {
	var candidates []Candidate
	names := t.Re.SubexpNames()
	for _, groups := range t.Re.FindAllStringSubmatch(text, -1) {
		var c Candidate
		for i, name := range names {
			if i == 0 || i >= len(groups) {
				continue
			}
			switch name {
			case "date":
				c.DateText = groups[i]
			case "description", "narration":
				c.Description = groups[i]
			case "amount":
				c.AmountText = groups[i]
			case "type":
				c.Marker = groups[i]
			case "balance":
				c.BalanceText = groups[i]
			case "withdrawal":
				c.Withdrawal = groups[i]
			case "deposit":
				c.Deposit = groups[i]
			}
		}
		candidates = append(candidates, c)
	}
	return candidates
}

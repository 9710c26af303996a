package parser

import (
	"regexp"
	"strings"

	"github.com/finlens/statement-insights/internal/models"
)

// Account metadata is labeled inconsistently across issuers; these
// cover the "Label : value" style seen on Indian bank statements.
var (
	accountNumberRe = regexp.MustCompile(`Account\s*Number\s*:\s*(\d+)`)
	accountNameRe   = regexp.MustCompile(`Account\s*Name\s*:\s*([^\n]+)`)
	accountTypeRe   = regexp.MustCompile(`Account\s*Type\s*:\s*([^\n]+)`)
	branchRe        = regexp.MustCompile(`Branch\s*:\s*([^\n]+)`)
)

// ExtractAccountInfo pulls best-effort account metadata from statement
// text. Fields the text does not expose stay empty.
func ExtractAccountInfo(text string) models.AccountInfo {
	capture := func(re *regexp.Regexp) string {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
		return ""
	}
	return models.AccountInfo{
		AccountName:   capture(accountNameRe),
		AccountNumber: capture(accountNumberRe),
		AccountType:   capture(accountTypeRe),
		Branch:        capture(branchRe),
	}
}

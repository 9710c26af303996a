package parser

import (
	"regexp"
	"strings"
)

// maxDescriptionLen bounds stored narration text.
const maxDescriptionLen = 100

var (
	spaceRunRe = regexp.MustCompile(`\s+`)

	// Reference and remark suffixes carry no categorization signal and
	// differ between otherwise identical transactions, so they are cut
	// before deduplication.
	noiseSuffixRes = []*regexp.Regexp{
		regexp.MustCompile(`TRANSACTION ID:.*`),
		regexp.MustCompile(`REF NO:.*`),
		regexp.MustCompile(`REFERENCE:.*`),
		regexp.MustCompile(`REMARKS:.*`),
	}
)

// CleanDescription normalizes a captured narration: whitespace collapsed,
// known noise suffixes stripped, overlong text truncated.
func CleanDescription(description string) string {
	if strings.TrimSpace(description) == "" {
		return "Unknown transaction"
	}

	description = spaceRunRe.ReplaceAllString(description, " ")
	for _, re := range noiseSuffixRes {
		description = re.ReplaceAllString(description, "")
	}
	description = strings.TrimSpace(description)

	// Truncate by runes so a multi-byte character at the cut point is
	// never split into invalid UTF-8.
	if runes := []rune(description); len(runes) > maxDescriptionLen {
		description = string(runes[:maxDescriptionLen-3]) + "..."
	}
	return description
}

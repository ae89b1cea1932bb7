package ingest

import (
	"regexp"
	"strings"

	"calouros-backend/lib/textutil"
)

const (
	GenderMale    = "M"
	GenderFemale  = "F"
	GenderUnknown = "I"
)

var nonLetterRegex = regexp.MustCompile(`[^A-Z]`)

// ClassifyGender resolves a full name through the first-name table:
// first token uppercased, verbatim lookup, then a retry with non-letter
// characters stripped. No other fallback is attempted.
func ClassifyGender(name string, genders map[string]string) string {
	first := strings.ToUpper(textutil.FirstToken(name))
	if first == "" {
		return GenderUnknown
	}
	if g, ok := genders[first]; ok {
		return g
	}
	if g, ok := genders[nonLetterRegex.ReplaceAllString(first, "")]; ok {
		return g
	}
	return GenderUnknown
}

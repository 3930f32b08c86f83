package letter

import (
	"regexp"
	"strings"
)

// datePattern matches the registration date format used by the school CMS,
// e.g. "2024.03.15". The token may be embedded in other cell text.
var datePattern = regexp.MustCompile(`\d{4}\.\d{2}\.\d{2}`)

// dateShape anchors the full-token check used before normalization.
var dateShape = regexp.MustCompile(`^\d{4}\.\d{2}\.\d{2}`)

// FindDateToken returns the first YYYY.MM.DD token in text, or "" if none.
func FindDateToken(text string) string {
	return datePattern.FindString(text)
}

// NormalizeDate converts a YYYY.MM.DD token to YYYY-MM-DD. Text that does
// not start with that shape is returned unchanged.
func NormalizeDate(token string) string {
	if dateShape.MatchString(token) {
		return strings.ReplaceAll(token, ".", "-")
	}
	return token
}

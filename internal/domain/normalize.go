package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeKey turns a grapheme into its lookup key:
//   - Unicode canonical composition (NFC)
//   - leading/trailing whitespace trimmed
//   - lower-cased
//
// Composed and decomposed spellings of the same word yield the same key.
func NormalizeKey(text string) string {
	text = norm.NFC.String(text)
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	return strings.ToLower(text)
}

// Package sanitise removes control characters and normalises whitespace
// in text before it reaches storage. Every sanitiser is idempotent.
package sanitise

import (
	"regexp"
	"strings"
)

// blankRuns matches 4 or more consecutive blank lines (5+ newlines).
var blankRuns = regexp.MustCompile(`\n{5,}`)

// Clean strips NUL and other control bytes from text, keeping only
// newline, carriage return, and tab among the control range.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isAllowed(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CleanPreserveFormatting strips control characters, normalises line
// endings to \n, and collapses runs of four or more blank lines down to
// two. Paragraph structure survives; noise does not.
func CleanPreserveFormatting(text string) string {
	text = Clean(text)
	if text == "" {
		return ""
	}

	// Normalise line endings.
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	// Cap runs of 4+ blank lines at 2 blank lines.
	text = blankRuns.ReplaceAllString(text, "\n\n\n")

	return text
}

// CleanCollapse strips control characters, collapses every whitespace
// run to a single space, and trims. Used for titles and previews where
// layout carries no meaning.
func CleanCollapse(text string) string {
	text = Clean(text)
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(text), " ")
}

// CleanMetadata sanitises a metadata map recursively. Keys and string
// values are collapsed; nested maps are descended into; other value
// types pass through unchanged. A nil map stays nil.
func CleanMetadata(metadata map[string]any) map[string]any {
	if metadata == nil {
		return nil
	}

	cleaned := make(map[string]any, len(metadata))
	for key, value := range metadata {
		cleanKey := CleanCollapse(key)
		switch v := value.(type) {
		case string:
			cleaned[cleanKey] = CleanCollapse(v)
		case map[string]any:
			cleaned[cleanKey] = CleanMetadata(v)
		default:
			cleaned[cleanKey] = v
		}
	}
	return cleaned
}

// isAllowed reports whether a rune may appear in sanitised text.
// Control characters other than \n, \r, \t are dropped, as are the
// C1 control range and the Unicode replacement-adjacent specials.
func isAllowed(r rune) bool {
	switch r {
	case '\n', '\r', '\t':
		return true
	}
	if r < 0x20 || r == 0x7f {
		return false
	}
	if r >= 0x80 && r <= 0x9f {
		return false
	}
	return true
}

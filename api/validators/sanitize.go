package validators

import "strings"

// SanitizeString collapses whitespace runs to single spaces, trims the ends
// and cuts the result to maxLen runes. Display names arrive from pasted
// spreadsheet cells, so tabs and double spaces are common.
func SanitizeString(input string, maxLen int) string {
	cleaned := strings.Join(strings.Fields(input), " ")
	if maxLen <= 0 {
		return cleaned
	}
	runes := []rune(cleaned)
	if len(runes) <= maxLen {
		return cleaned
	}
	return strings.TrimSpace(string(runes[:maxLen]))
}

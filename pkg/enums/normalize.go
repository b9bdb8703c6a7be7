package enums

import "strings"

// Normalize upper-cases input and collapses whitespace runs into a single
// underscore, so "waiting for location" matches WAITING_FOR_LOCATION.
func Normalize(value string) string {
	return strings.Join(strings.Fields(strings.ToUpper(value)), "_")
}

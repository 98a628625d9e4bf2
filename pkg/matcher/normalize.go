package matcher

import "strings"

// Normalize trims surrounding whitespace and lowercases s. Two keys are the
// same key iff their normalized forms are equal.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

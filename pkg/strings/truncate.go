package strings

import (
	"strings"
)

// DefaultChangeMaxLen is the maximum length of a change line in human
// readable reports. Structured reports keep the full value.
const DefaultChangeMaxLen = 160

// MinTruncateLen is the smallest maxLen Truncate honors: one rune plus "...".
const MinTruncateLen = 4

// Truncate flattens s to a single line and shortens it to maxLen runes,
// ending it with "..." when it was cut. Runs of whitespace, including
// newlines, collapse into a single space.
func Truncate(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}

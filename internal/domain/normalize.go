package domain

import (
	"strings"
)

// NormalizeRecordName prepares a user-supplied record name for storage:
//   - trims leading/trailing whitespace
//   - compresses runs of spaces into one
//   - falls back to the sheet's display name when empty
func NormalizeRecordName(name string, t CalcType) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return t.DisplayName()
	}

	var b strings.Builder
	b.Grow(len(name))
	prevSpace := false
	for _, r := range name {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeUsername lowercases and trims a username for storage and lookup.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

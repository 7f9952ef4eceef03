package model

import "strings"

// Slugify lowercases name, turns whitespace runs into single hyphens and drops anything outside [a-z0-9-].
func Slugify(name string) string {
	var b strings.Builder

	for _, word := range strings.Fields(strings.ToLower(name)) {
		if b.Len() > 0 {
			b.WriteByte('-')
		}

		for _, r := range word {
			if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
				b.WriteRune(r)
			}
		}
	}

	return strings.Trim(b.String(), "-")
}

// Package utils provides utility functions for the application.
package utils

import (
	"strings"
	"unicode"
)

// Slugify converts a display name into a lowercase URL slug.
// Runs of characters other than letters and digits collapse into a
// single hyphen, and leading/trailing hyphens are stripped.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

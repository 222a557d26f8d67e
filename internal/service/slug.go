package service

import (
	"strings"
	"unicode"
)

// Slugify converts a title into a URL slug. Characters outside
// [a-z0-9\s-] are dropped after lower-casing, whitespace runs become a
// single hyphen, hyphen runs collapse, and edge hyphens are trimmed.
func Slugify(title string) string {
	var keep strings.Builder
	keep.Grow(len(title))
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			keep.WriteRune(r)
		case unicode.IsSpace(r):
			keep.WriteByte(' ')
		}
	}

	joined := strings.Join(strings.Fields(keep.String()), "-")

	var out strings.Builder
	out.Grow(len(joined))
	prevHyphen := false
	for _, r := range joined {
		if r == '-' {
			if prevHyphen {
				continue
			}
			prevHyphen = true
		} else {
			prevHyphen = false
		}
		out.WriteRune(r)
	}

	return strings.Trim(out.String(), "-")
}

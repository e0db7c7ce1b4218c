package buffer

import (
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// NextCharBoundary returns the length in bytes of the first character of s, where a
// character is a base rune together with any combining marks that follow it.
func NextCharBoundary(s string) int {
	if len(s) == 0 {
		return 0
	}
	if len(s) == 1 || (s[0] < utf8.RuneSelf && s[1] < utf8.RuneSelf) {
		return 1
	}
	return norm.NFC.NextBoundaryInString(s, true)
}

func charCount(s string) int {
	n := 0
	for len(s) > 0 {
		s = s[NextCharBoundary(s):]
		n++
	}
	return n
}

package internal

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Version is the application version shown in the window title and --version
const Version = "0.3.0"

// CountChars returns the number of characters (runes) in s
func CountChars(s string) int {
	return utf8.RuneCountInString(s)
}

// IsBlank reports whether s is empty or consists only of whitespace. The
// byte order mark counts as whitespace, NEL (U+0085) does not, as in browsers.
func IsBlank(s string) bool {
	return strings.TrimFunc(s, isSpace) == ""
}

func isSpace(r rune) bool {
	switch r {
	case '\uFEFF':
		return true
	case '\u0085':
		return false
	}
	return unicode.IsSpace(r)
}

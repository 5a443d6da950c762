package corpus

import (
	"strings"
	"unicode"
)

// FilterFunc returns true when an entry should be kept.
type FilterFunc func(string) bool

// IsWord accepts single tokens made of printable, non-space runes.
func IsWord(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

// IsPassage accepts printable lines and rejects comments starting with '#'.
func IsPassage(line string) bool {
	if strings.HasPrefix(line, "#") {
		return false
	}
	for _, r := range line {
		if !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

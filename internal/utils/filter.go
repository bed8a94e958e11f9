package utils

import "unicode"

// IsSearchable reports whether s only holds letters and whitespace.
// Other runes still work as input; they just never survive into a word.
func IsSearchable(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// CountWords returns the number of whitespace separated words in s.
func CountWords(s string) int {
	count := 0
	inWord := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWord = false
			continue
		}
		if !inWord {
			count++
			inWord = true
		}
	}
	return count
}

package utils

import "strings"

// NormalizeWord lowercases a dictionary entry and strips surrounding whitespace.
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// NormalizeInput prepares a line typed by the user for searching.
// Inner whitespace is kept as-is since it decides where words can split.
func NormalizeInput(line string) string {
	return strings.ToLower(strings.TrimRight(line, "\r\n"))
}

package utils

import (
	"strings"
	"unicode"
)

// SanitizeIdentifier trims and drops control characters without escaping.
// Used for cabin numbers and device ids, which are matched verbatim.
func SanitizeIdentifier(input string) string {
	return removeControlChars(strings.TrimSpace(input))
}

// SanitizeText trims multi-line text and drops control characters other
// than line breaks and tabs. The text is stored as typed; escaping is left
// to whatever renders it.
func SanitizeText(input string) string {
	var result strings.Builder
	for _, r := range strings.TrimSpace(input) {
		if unicode.IsPrint(r) || r == '\n' || r == '\t' || r == '\r' {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// SanitizeOptionalText applies SanitizeText and maps blank input to nil.
func SanitizeOptionalText(input *string) *string {
	if input == nil {
		return nil
	}
	s := SanitizeText(*input)
	if s == "" {
		return nil
	}
	return &s
}

func removeControlChars(input string) string {
	var result strings.Builder
	for _, r := range input {
		if unicode.IsPrint(r) || r == ' ' {
			result.WriteRune(r)
		}
	}
	return result.String()
}

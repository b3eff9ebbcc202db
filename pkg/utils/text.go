package utils

import (
	"strings"
	"unicode/utf8"
)

// Truncate returns the first maxChars runes of text. It never errors and always takes a prefix,
// so the same input yields the same output on every call.
func Truncate(text string, maxChars int) string {
	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxChars])
}

// Preview shortens text for logs.
func Preview(text string, maxChars int) string {
	t := Truncate(text, maxChars)
	if len(t) < len(text) {
		return t + "..."
	}
	return t
}

// WrapWords word-wraps text so every line fits in width runes including the prefixes.
// firstPrefix starts the first line, restPrefix every continuation line. Words longer than
// the available space are kept whole on their own line.
func WrapWords(text string, width int, firstPrefix, restPrefix string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{strings.TrimRight(firstPrefix, " ")}
	}

	var lines []string
	var current strings.Builder
	current.WriteString(firstPrefix)
	currentLen := utf8.RuneCountInString(firstPrefix)
	prefixLen := currentLen
	empty := true

	for _, word := range words {
		wordLen := utf8.RuneCountInString(word)
		if empty {
			current.WriteString(word)
			currentLen += wordLen
			empty = false
			continue
		}
		if currentLen+1+wordLen <= width {
			current.WriteByte(' ')
			current.WriteString(word)
			currentLen += 1 + wordLen
			continue
		}

		lines = append(lines, current.String())
		current.Reset()
		current.WriteString(restPrefix)
		prefixLen = utf8.RuneCountInString(restPrefix)
		current.WriteString(word)
		currentLen = prefixLen + wordLen
	}
	lines = append(lines, current.String())
	return lines
}

package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	doc := strings.Repeat("abcdefghij", 3000) // 30,000 chars

	first := Truncate(doc, 15000)
	second := Truncate(doc, 15000)

	assert.Equal(t, 15000, utf8.RuneCountInString(first))
	assert.Equal(t, first, second)
	assert.True(t, strings.HasPrefix(doc, first))

	assert.Equal(t, "short", Truncate("short", 100))
	assert.Equal(t, "abc", Truncate("abc", 0), "non-positive budget disables truncation")
	assert.Equal(t, "₹₹", Truncate("₹₹₹", 2), "counts runes, not bytes")
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "abc...", Preview("abcdef", 3))
	assert.Equal(t, "abc", Preview("abc", 3))
}

func TestWrapWords(t *testing.T) {
	lines := WrapWords("the quick brown fox jumps over the lazy dog", 15, "", "")
	assert.Equal(t, []string{"the quick brown", "fox jumps over", "the lazy dog"}, lines)

	lines = WrapWords("alpha beta gamma delta", 12, "a) ", "    ")
	assert.Equal(t, []string{"a) alpha", "    beta", "    gamma", "    delta"}, lines)
	for _, l := range lines {
		assert.LessOrEqual(t, utf8.RuneCountInString(l), 12)
	}

	lines = WrapWords("tiny supercalifragilisticexpialidocious end", 10, "", "")
	assert.Equal(t, []string{"tiny", "supercalifragilisticexpialidocious", "end"}, lines)

	assert.Equal(t, []string{"1."}, WrapWords("   ", 10, "1. ", ""))
}

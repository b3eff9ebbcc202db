// Package textformat turns LLM markdown output into plain text that reads well
// on a laptop-sized terminal or text area.
package textformat

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"contract-assistant-be/pkg/utils"
)

const (
	DefaultLineLength = 85

	// ALL-CAPS lines up to this many words are treated as headings and never wrapped.
	headingMaxWords = 12

	clauseContentIndent = "   "
	letteredContIndent  = "    "
	maxCleanPasses      = 8
)

var (
	fenceLine      = regexp.MustCompile("^\\s*```[\\w+-]*\\s*$")
	headingToken   = regexp.MustCompile(`(^|[ \t])#{1,6}([ \t]+|$)`)
	leadingBullet  = regexp.MustCompile(`^(\s*)\*[ \t]+`)
	numberedClause = regexp.MustCompile(`^(\s*)(\d+)\.\s+([^:]{1,80}?):\s+(\S.*)$`)
	letteredLine   = regexp.MustCompile(`^(\s*)([a-zA-Z]\)|\([a-zA-Z]\)|[A-Z]\.)\s+(\S.*)$`)
	blankOnly      = regexp.MustCompile(`^\s*$`)

	escapedQuotes = strings.NewReplacer(`\"`, `"`, `\'`, `'`)
)

// Normalize strips markdown artifacts, collapses blank-line runs and re-wraps overlong lines.
// It is a pure function and Normalize(Normalize(x, w), w) == Normalize(x, w).
func Normalize(raw string, maxLineLength int) string {
	if maxLineLength <= 0 {
		maxLineLength = DefaultLineLength
	}

	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var cleaned []string
	for _, line := range strings.Split(text, "\n") {
		if fenceLine.MatchString(line) {
			continue
		}
		cleaned = append(cleaned, cleanLine(line))
	}

	var out []string
	for _, line := range collapseBlankLines(cleaned) {
		out = append(out, wrapLine(line, maxLineLength)...)
	}
	return strings.Join(out, "\n")
}

// cleanLine applies the artifact rules until the line stops changing.
func cleanLine(line string) string {
	for i := 0; i < maxCleanPasses; i++ {
		next := cleanOnce(line)
		if next == line {
			break
		}
		line = next
	}
	return line
}

func cleanOnce(line string) string {
	line = escapedQuotes.Replace(line)
	line = strings.ReplaceAll(line, "`", "")
	line = strings.ReplaceAll(line, "•", "-")
	line = leadingBullet.ReplaceAllString(line, "$1- ")
	line = strings.ReplaceAll(line, "*", "")
	line = strings.ReplaceAll(line, "__", "")
	line = headingToken.ReplaceAllString(line, "$1")
	return strings.TrimRightFunc(line, unicode.IsSpace)
}

// collapseBlankLines keeps at most one blank line between paragraphs and none at the edges.
func collapseBlankLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	prevBlank := true
	for _, line := range lines {
		blank := blankOnly.MatchString(line)
		if blank {
			if prevBlank {
				continue
			}
			out = append(out, "")
			prevBlank = true
			continue
		}
		out = append(out, line)
		prevBlank = false
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	return out
}

func wrapLine(line string, width int) []string {
	if line == "" || utf8.RuneCountInString(line) <= width || IsHeading(line) {
		return []string{line}
	}

	if m := numberedClause.FindStringSubmatch(line); m != nil && isUpperTitle(m[3]) {
		indent, number, title, content := m[1], m[2], strings.TrimSpace(m[3]), m[4]
		lines := []string{indent + number + ". " + title + ":"}
		prefix := indent + clauseContentIndent
		return append(lines, utils.WrapWords(content, width, prefix, prefix)...)
	}

	if m := letteredLine.FindStringSubmatch(line); m != nil {
		indent, marker, content := m[1], m[2], m[3]
		return utils.WrapWords(content, width, indent+marker+" ", indent+letteredContIndent)
	}

	indent := leadingWhitespace(line)
	return utils.WrapWords(strings.TrimSpace(line), width, indent, indent)
}

// IsHeading reports whether a line is a short ALL-CAPS heading.
func IsHeading(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	if len(strings.Fields(trimmed)) > headingMaxWords {
		return false
	}
	return isUpperTitle(trimmed)
}

// isUpperTitle: at least one letter and no lowercase letters.
func isUpperTitle(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}

func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeftFunc(line, unicode.IsSpace))]
}

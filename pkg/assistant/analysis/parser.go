// Package analysis pulls structured fields out of a free-text contract analysis.
// Extraction is best effort: anything that cannot be found is simply left out.
package analysis

import (
	"regexp"
	"strings"

	"contract-assistant-be/pkg/textformat"
)

// Detail keys returned in Result.Details.
const (
	DetailParties       = "parties"
	DetailEffectiveDate = "effective_date"
	DetailTerm          = "term"
	DetailGoverningLaw  = "governing_law"
)

type Result struct {
	Text         string
	ContractType string
	KeyClauses   []string
	Details      map[string]string
}

var (
	contractTypeLine = regexp.MustCompile(`(?im)^[ \t]*(?:[-*•][ \t]*)?contract[ \t]+type[ \t]*:[ \t]*(.+)$`)
	keyClausesHeader = regexp.MustCompile(`(?i)^\s*(?:\d+\.\s*)?(?:#+\s*)?key\s+(?:clauses|terms)\s*:?\s*$`)
	bulletLine       = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)]|[a-z]\))\s+(.+)$`)
	numberedSection  = regexp.MustCompile(`^\s*\d+\.\s+[A-Z][A-Z0-9 &/,()'-]*:?\s*$`)

	detailPatterns = map[string]*regexp.Regexp{
		DetailParties:       detailPattern(`parties`),
		DetailEffectiveDate: detailPattern(`effective[ \t]+date`),
		DetailTerm:          detailPattern(`(?:term|duration)`),
		DetailGoverningLaw:  detailPattern(`governing[ \t]+law`),
	}
)

func detailPattern(label string) *regexp.Regexp {
	return regexp.MustCompile(`(?im)^[ \t]*(?:[-*•][ \t]*)?` + label + `[ \t]*:[ \t]*(.+)$`)
}

// Parse never fails; a response with none of the expected sections yields only Text.
func Parse(text string) Result {
	cleaned := strings.NewReplacer("**", "", "__", "", "`", "").Replace(text)
	cleaned = strings.ReplaceAll(cleaned, "\r\n", "\n")

	res := Result{
		Text:       text,
		KeyClauses: keyClauses(cleaned),
		Details:    map[string]string{},
	}

	if m := contractTypeLine.FindStringSubmatch(cleaned); m != nil {
		res.ContractType = cleanValue(m[1])
	}

	for key, re := range detailPatterns {
		if m := re.FindStringSubmatch(cleaned); m != nil {
			if v := cleanValue(m[1]); v != "" {
				res.Details[key] = v
			}
		}
	}
	return res
}

func keyClauses(text string) []string {
	lines := strings.Split(text, "\n")
	start := -1
	for i, line := range lines {
		if keyClausesHeader.MatchString(line) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return []string{}
	}

	clauses := []string{}
	for _, line := range lines[start:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if m := bulletLine.FindStringSubmatch(line); m != nil && !numberedSection.MatchString(line) {
			if v := cleanValue(m[1]); v != "" {
				clauses = append(clauses, v)
			}
			continue
		}
		if numberedSection.MatchString(line) || textformat.IsHeading(line) {
			break
		}
	}
	return clauses
}

// Answers the model gives for information the document does not contain.
var absentPrefixes = []string{"not specified", "not mentioned", "not stated", "not provided", "n/a"}

// cleanValue trims whitespace and drops unfilled template placeholders like "[date]"
// and absent-information answers like "Not specified in the document".
func cleanValue(v string) string {
	v = strings.TrimSpace(v)
	if strings.HasPrefix(v, "[") && strings.HasSuffix(v, "]") {
		return ""
	}
	lower := strings.ToLower(v)
	for _, p := range absentPrefixes {
		if strings.HasPrefix(lower, p) {
			return ""
		}
	}
	return v
}

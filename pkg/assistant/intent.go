package assistant

import "strings"

// Intent is the operation a free-text query is routed to.
type Intent string

const (
	IntentDraft    Intent = "DRAFT"
	IntentQuestion Intent = "QUESTION"
	IntentModify   Intent = "MODIFY"
	IntentAnalyze  Intent = "ANALYZE"
	IntentInvalid  Intent = "INVALID"
)

// AllIntents lists the intents in the order the classifier rule sheet describes them.
var AllIntents = []Intent{IntentDraft, IntentQuestion, IntentModify, IntentAnalyze, IntentInvalid}

// RequiresDocument reports whether the intent operates on the active document.
func (i Intent) RequiresDocument() bool {
	switch i {
	case IntentQuestion, IntentModify, IntentAnalyze:
		return true
	}
	return false
}

func (i Intent) String() string {
	return string(i)
}

// ParseIntent finds the first known intent label in raw model output.
// Anything unrecognised is INVALID.
func ParseIntent(raw string) Intent {
	cleaned := strings.ToUpper(strings.TrimSpace(raw))
	cleaned = strings.Trim(cleaned, "`*\"'. \n")

	for _, candidate := range AllIntents {
		if cleaned == string(candidate) {
			return candidate
		}
	}

	// Models sometimes wrap the label ("Intent: MODIFY"). Take the earliest match.
	best := IntentInvalid
	bestPos := -1
	for _, candidate := range AllIntents {
		pos := strings.Index(cleaned, string(candidate))
		if pos >= 0 && (bestPos == -1 || pos < bestPos) {
			best = candidate
			bestPos = pos
		}
	}
	return best
}

package prompt

import (
	"fmt"
	"strings"

	"contract-assistant-be/internal/constant"
	"contract-assistant-be/pkg/store"
	"contract-assistant-be/pkg/utils"
)

const DefaultMaxDocumentChars = 15000

// Conversation context: the last ContextTurns exchanges, each side shortened.
const (
	ContextTurns         = 3
	contextQueryChars    = 100
	contextResponseChars = 200
)

// Builder renders every prompt the assistant sends. Document text is cut to MaxDocumentChars.
type Builder struct {
	MaxDocumentChars int
	Jurisdiction     string
}

func NewBuilder(maxDocumentChars int, jurisdiction string) *Builder {
	if maxDocumentChars <= 0 {
		maxDocumentChars = DefaultMaxDocumentChars
	}
	if strings.TrimSpace(jurisdiction) == "" {
		jurisdiction = "Indian"
	}
	return &Builder{MaxDocumentChars: maxDocumentChars, Jurisdiction: jurisdiction}
}

// Document returns the prefix of content that fits the budget.
func (b *Builder) Document(content string) string {
	return utils.Truncate(content, b.MaxDocumentChars)
}

func (b *Builder) Relevance(query string) string {
	return fmt.Sprintf(constant.RelevancePromptV1, query)
}

// Conversation renders the most recent turns as a context block, or "" when there are none.
func (b *Builder) Conversation(turns []store.Turn) string {
	if len(turns) == 0 {
		return ""
	}
	if len(turns) > ContextTurns {
		turns = turns[len(turns)-ContextTurns:]
	}
	var sb strings.Builder
	for i, t := range turns {
		fmt.Fprintf(&sb, "%d. Previous Query: %s\n", i+1, utils.Preview(oneLine(t.Query), contextQueryChars))
		fmt.Fprintf(&sb, "   Previous Response: %s\n", utils.Preview(oneLine(t.Response), contextResponseChars))
	}
	return fmt.Sprintf(constant.ConversationContextV1, sb.String())
}

func (b *Builder) Intent(query string, hasActiveDocument bool, activeTypeLabel string, history ...store.Turn) string {
	var state string
	if hasActiveDocument {
		state = fmt.Sprintf("ACTIVE_CONTRACT: %q\nA contract is active. All five intents are possible.", labelOrDefault(activeTypeLabel))
	} else {
		state = "NO_ACTIVE_CONTRACT: nothing has been drafted yet. Only DRAFT or INVALID are possible."
	}
	if conv := b.Conversation(history); conv != "" {
		state += "\n\n" + strings.TrimSpace(conv)
	}
	return fmt.Sprintf(constant.IntentPromptV1, state, query)
}

func (b *Builder) Draft(query string) string {
	return fmt.Sprintf(constant.DraftPromptV1, b.Jurisdiction, b.Jurisdiction, constant.FormattingRulesV1, query)
}

func (b *Builder) Question(content, typeLabel, question string, history ...store.Turn) string {
	return fmt.Sprintf(constant.QuestionPromptV1, labelOrDefault(typeLabel), b.Document(content), b.Conversation(history), question)
}

func (b *Builder) Modify(content, typeLabel, change string, history ...store.Turn) string {
	return fmt.Sprintf(constant.ModifyPromptV1, labelOrDefault(typeLabel), b.Document(content), b.Conversation(history), change, constant.FormattingRulesV1)
}

func (b *Builder) Analyze(content, typeLabel string) string {
	return fmt.Sprintf(constant.AnalyzePromptV1, labelOrDefault(typeLabel), strings.ToUpper(b.Jurisdiction), b.Document(content))
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func labelOrDefault(label string) string {
	if strings.TrimSpace(label) == "" {
		return "contract"
	}
	return label
}

package prompt

import (
	"fmt"
	"strings"
	"testing"

	"contract-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func TestDocumentTruncationIsDeterministic(t *testing.T) {
	b := NewBuilder(15000, "Indian")
	doc := strings.Repeat("0123456789", 3000)

	first := b.Question(doc, "Lease Agreement", "What is the rent?")
	second := b.Question(doc, "Lease Agreement", "What is the rent?")

	assert.Equal(t, first, second)
	assert.Contains(t, first, doc[:15000])
	assert.NotContains(t, first, doc[:15001])
}

func TestEveryDocumentPromptIsTruncated(t *testing.T) {
	b := NewBuilder(100, "Indian")
	doc := strings.Repeat("a", 99) + "Z" + strings.Repeat("b", 500)

	for name, p := range map[string]string{
		"question": b.Question(doc, "", "q"),
		"modify":   b.Modify(doc, "", "c"),
		"analyze":  b.Analyze(doc, ""),
	} {
		assert.Contains(t, p, strings.Repeat("a", 99)+"Z", name)
		assert.NotContains(t, p, "Zb", name)
	}
}

func TestIntentPromptReflectsSessionState(t *testing.T) {
	b := NewBuilder(0, "")
	assert.Equal(t, DefaultMaxDocumentChars, b.MaxDocumentChars)
	assert.Equal(t, "Indian", b.Jurisdiction)

	without := b.Intent("draft an nda", false, "")
	assert.Contains(t, without, "NO_ACTIVE_CONTRACT")
	assert.Contains(t, without, "draft an nda")

	with := b.Intent("what is the rent", true, "Lease Agreement")
	assert.Contains(t, with, `ACTIVE_CONTRACT: "Lease Agreement"`)
}

func TestConversationContextUsesLastThreeTurns(t *testing.T) {
	b := NewBuilder(1000, "Indian")
	assert.Empty(t, b.Conversation(nil))

	var turns []store.Turn
	for i := 1; i <= 4; i++ {
		turns = append(turns, store.Turn{
			Query:    fmt.Sprintf("query-%d ", i) + strings.Repeat("q", 200),
			Response: fmt.Sprintf("response-%d\n", i) + strings.Repeat("r", 400),
		})
	}

	conv := b.Conversation(turns)
	assert.Contains(t, conv, "PREVIOUS CONVERSATION CONTEXT")
	assert.NotContains(t, conv, "query-1")
	assert.Contains(t, conv, "1. Previous Query: query-2")
	assert.Contains(t, conv, "3. Previous Query: query-4")
	assert.Contains(t, conv, "Previous Response: response-4 ")
	assert.Contains(t, conv, "query-4 "+strings.Repeat("q", 100-len("query-4 "))+"...")
	assert.NotContains(t, conv, strings.Repeat("q", 100))
	assert.NotContains(t, conv, strings.Repeat("r", 200))

	for name, p := range map[string]string{
		"intent":   b.Intent("and the second party?", true, "Lease Agreement", turns...),
		"question": b.Question("LEASE", "Lease Agreement", "and the second party?", turns...),
		"modify":   b.Modify("LEASE", "Lease Agreement", "add a witness", turns...),
	} {
		assert.Contains(t, p, "Previous Query: query-4", name)
	}
	assert.NotContains(t, b.Question("LEASE", "Lease Agreement", "q"), "PREVIOUS CONVERSATION CONTEXT")

	intent := b.Intent("and the second party?", true, "Lease Agreement", turns...)
	assert.Less(t, strings.Index(intent, "query-4"), strings.Index(intent, "<user_query>"))
}

func TestDraftAndAnalyzeUseJurisdiction(t *testing.T) {
	b := NewBuilder(1000, "Singapore")
	assert.Contains(t, b.Draft("draft a lease"), "Singapore legal system")
	assert.Contains(t, b.Analyze("text", "Lease Agreement"), "COMPLIANCE WITH SINGAPORE LAW")
	assert.Contains(t, b.Relevance("tell me a joke"), `"tell me a joke"`)
}

package intent

import (
	"context"
	"errors"
	"testing"

	"contract-assistant-be/internal/pkg/logger"
	"contract-assistant-be/pkg/assistant"
	"contract-assistant-be/pkg/assistant/prompt"
	"contract-assistant-be/pkg/assistant/rules"
	"contract-assistant-be/pkg/llm/llmtest"
	"contract-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuarded(fake *llmtest.Fake) *Guarded {
	return NewGuarded(NewLLMClassifier(fake, prompt.NewBuilder(0, "")), rules.Default(), logger.NewNopLogger())
}

func TestClassifyWithActiveDocument(t *testing.T) {
	tests := []struct {
		answer string
		query  string
		want   assistant.Intent
	}{
		{"QUESTION", "What is the confidentiality period?", assistant.IntentQuestion},
		{"Intent: MODIFY", "Add a 2-year non-compete clause", assistant.IntentModify},
		{"analyze", "Review the risks", assistant.IntentAnalyze},
		{"DRAFT", "Draft a lease agreement", assistant.IntentDraft},
		{"no idea", "asdf", assistant.IntentInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			res, err := newGuarded(llmtest.Static(tt.answer)).Classify(context.Background(), tt.query,
				State{HasActiveDocument: true, ActiveTypeLabel: "Non-Disclosure Agreement"})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Intent)
			assert.Equal(t, tt.answer, res.Raw)
		})
	}
}

func TestClassifyWithoutActiveDocumentOnlyDraftOrInvalid(t *testing.T) {
	for _, answer := range []string{"DRAFT", "QUESTION", "MODIFY", "ANALYZE", "INVALID", "garbage"} {
		t.Run(answer, func(t *testing.T) {
			res, err := newGuarded(llmtest.Static(answer)).Classify(context.Background(),
				"Draft an NDA between Acme and Beta", State{})
			require.NoError(t, err)
			assert.Contains(t, []assistant.Intent{assistant.IntentDraft, assistant.IntentInvalid}, res.Intent)
			if assistant.Intent(answer).RequiresDocument() {
				assert.Equal(t, ReasonNeedsDocument, res.Reason)
			}
		})
	}
}

func TestDraftWithoutKeywordIsGuidanceFailure(t *testing.T) {
	res, err := newGuarded(llmtest.Static("DRAFT")).Classify(context.Background(), "an NDA between Acme and Beta", State{})

	require.Error(t, err)
	assert.True(t, assistant.IsKind(err, assistant.KindMissingDraftKeyword))
	assert.Equal(t, assistant.IntentDraft, res.Intent)
}

func TestClassifyLLMFailure(t *testing.T) {
	_, err := newGuarded(llmtest.Failing(errors.New("timeout"))).Classify(context.Background(), "Draft an NDA", State{})

	require.Error(t, err)
	f := assistant.AsFailure(err)
	assert.Equal(t, assistant.KindClassification, f.Kind)
	assert.Equal(t, assistant.MessageClassificationFailed, f.Message)
}

func TestPromptCarriesSessionState(t *testing.T) {
	fake := llmtest.Static("QUESTION")
	_, err := newGuarded(fake).Classify(context.Background(), "what is the rent", State{
		HasActiveDocument: true,
		ActiveTypeLabel:   "Lease Agreement",
		History:           []store.Turn{{Query: "draft a lease for my flat", Response: "LEASE AGREEMENT", Intent: "DRAFT"}},
	})
	require.NoError(t, err)
	assert.Contains(t, fake.Prompts()[0], "Lease Agreement")
	assert.Contains(t, fake.Prompts()[0], "Previous Query: draft a lease for my flat")
}

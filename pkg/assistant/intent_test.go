package assistant

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIntent(t *testing.T) {
	tests := []struct {
		raw  string
		want Intent
	}{
		{"DRAFT", IntentDraft},
		{"  question\n", IntentQuestion},
		{"**MODIFY**", IntentModify},
		{"Intent: ANALYZE", IntentAnalyze},
		{"INVALID", IntentInvalid},
		{"I am not sure", IntentInvalid},
		{"", IntentInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIntent(tt.raw))
		})
	}
}

func TestRequiresDocument(t *testing.T) {
	assert.False(t, IntentDraft.RequiresDocument())
	assert.False(t, IntentInvalid.RequiresDocument())
	assert.True(t, IntentQuestion.RequiresDocument())
	assert.True(t, IntentModify.RequiresDocument())
	assert.True(t, IntentAnalyze.RequiresDocument())
}

func TestAsFailure(t *testing.T) {
	cause := errors.New("socket closed")

	f := AsFailure(Fail(KindLLM, "upstream failed", cause))
	assert.Equal(t, KindLLM, f.Kind)
	assert.ErrorIs(t, f, cause)

	internal := AsFailure(cause)
	assert.Equal(t, KindInternal, internal.Kind)
	assert.Equal(t, MessageInternal, internal.Message)

	assert.Nil(t, AsFailure(nil))
	assert.True(t, IsKind(Fail(KindIrrelevant, MessageIrrelevant, nil), KindIrrelevant))
	assert.False(t, IsKind(cause, KindIrrelevant))
}

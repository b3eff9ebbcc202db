// Package intent maps a free-text query to an assistant operation.
package intent

import (
	"context"

	"contract-assistant-be/internal/pkg/logger"
	"contract-assistant-be/pkg/assistant"
	"contract-assistant-be/pkg/assistant/prompt"
	"contract-assistant-be/pkg/assistant/rules"
	"contract-assistant-be/pkg/llm"
	"contract-assistant-be/pkg/store"
	"contract-assistant-be/pkg/utils"
)

// State is what the classifier knows about the session.
type State struct {
	HasActiveDocument bool
	ActiveTypeLabel   string
	History           []store.Turn
}

type Classification struct {
	Intent assistant.Intent
	Raw    string // model output before guards
	Reason string // set when a guard overrode the model
}

// Classifier is the pluggable part: anything that can name an intent for a query.
type Classifier interface {
	Classify(ctx context.Context, query string, state State) (Classification, error)
}

// LLMClassifier asks the model for a label.
type LLMClassifier struct {
	llm     llm.LLMProvider
	prompts *prompt.Builder
}

func NewLLMClassifier(provider llm.LLMProvider, prompts *prompt.Builder) *LLMClassifier {
	return &LLMClassifier{llm: provider, prompts: prompts}
}

func (c *LLMClassifier) Classify(ctx context.Context, query string, state State) (Classification, error) {
	p := c.prompts.Intent(query, state.HasActiveDocument, state.ActiveTypeLabel, state.History...)
	raw, err := c.llm.Generate(ctx, p, llm.WithTemperature(0))
	if err != nil {
		return Classification{}, assistant.Fail(assistant.KindClassification, assistant.MessageClassificationFailed, err)
	}
	return Classification{Intent: assistant.ParseIntent(raw), Raw: raw}, nil
}

// Guarded wraps any Classifier with the deterministic checks:
// without an active document only DRAFT or INVALID come out, and DRAFT needs a drafting keyword.
type Guarded struct {
	inner  Classifier
	rules  *rules.Rules
	logger logger.ILogger
}

func NewGuarded(inner Classifier, r *rules.Rules, log logger.ILogger) *Guarded {
	return &Guarded{inner: inner, rules: r, logger: log}
}

const (
	ReasonNeedsDocument  = "operation requires an active contract"
	ReasonNoDraftKeyword = "draft requested without a drafting keyword"
)

// Classify returns the guarded intent. A DRAFT without a drafting keyword is a
// KindMissingDraftKeyword failure; every other outcome is a Classification.
func (g *Guarded) Classify(ctx context.Context, query string, state State) (Classification, error) {
	res, err := g.inner.Classify(ctx, query, state)
	if err != nil {
		g.logger.Error("INTENT", "Intent classification failed", map[string]interface{}{
			"error": err.Error(),
			"query": utils.Preview(query, 80),
		})
		return Classification{}, err
	}

	if res.Intent.RequiresDocument() && !state.HasActiveDocument {
		g.logger.Info("INTENT", "Intent needs an active contract, downgraded to INVALID", map[string]interface{}{
			"model_intent": res.Intent.String(),
		})
		res.Intent = assistant.IntentInvalid
		res.Reason = ReasonNeedsDocument
	}

	if res.Intent == assistant.IntentDraft && !g.rules.HasDraftingKeyword(query) {
		g.logger.Info("INTENT", "DRAFT rejected, no drafting keyword in query", map[string]interface{}{
			"query": utils.Preview(query, 80),
		})
		return res, assistant.Fail(assistant.KindMissingDraftKeyword, assistant.MessageMissingDraftKeyword, nil)
	}

	g.logger.Debug("INTENT", "Intent classified", map[string]interface{}{
		"intent": res.Intent.String(),
		"raw":    utils.Preview(res.Raw, 40),
		"active": state.HasActiveDocument,
	})
	return res, nil
}

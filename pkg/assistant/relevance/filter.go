// Package relevance rejects off-topic queries before any document operation runs.
package relevance

import (
	"context"
	"strings"

	"contract-assistant-be/internal/pkg/logger"
	"contract-assistant-be/pkg/assistant/prompt"
	"contract-assistant-be/pkg/assistant/rules"
	"contract-assistant-be/pkg/llm"
	"contract-assistant-be/pkg/utils"
)

// Stage names the layer of the cascade that decided.
type Stage string

const (
	StageSmallTalk        Stage = "small_talk"
	StageLegalKeyword     Stage = "legal_keyword"
	StageDocumentQuestion Stage = "document_question"
	StageModification     Stage = "modification_request"
	StageLLM              Stage = "llm"
	StageCoarseFallback   Stage = "coarse_fallback"
)

type Verdict struct {
	Relevant bool
	Stage    Stage
}

// Filter runs the heuristic cascade and only asks the LLM when every rule is inconclusive.
type Filter struct {
	rules   *rules.Rules
	prompts *prompt.Builder
	llm     llm.LLMProvider
	logger  logger.ILogger
}

func NewFilter(r *rules.Rules, prompts *prompt.Builder, provider llm.LLMProvider, log logger.ILogger) *Filter {
	return &Filter{rules: r, prompts: prompts, llm: provider, logger: log}
}

func (f *Filter) IsRelevant(ctx context.Context, query string) bool {
	return f.Evaluate(ctx, query).Relevant
}

func (f *Filter) Evaluate(ctx context.Context, query string) Verdict {
	hasLegal := f.rules.HasLegalKeyword(query)

	switch {
	case f.rules.IsSmallTalk(query) && !hasLegal:
		return Verdict{Relevant: false, Stage: StageSmallTalk}
	case hasLegal:
		return Verdict{Relevant: true, Stage: StageLegalKeyword}
	case f.rules.MatchesDocumentQuestion(query):
		return Verdict{Relevant: true, Stage: StageDocumentQuestion}
	case f.rules.IsModificationRequest(query):
		return Verdict{Relevant: true, Stage: StageModification}
	}

	answer, err := f.llm.Generate(ctx, f.prompts.Relevance(query), llm.WithTemperature(0))
	if err != nil {
		relevant := f.rules.HasCoarseKeyword(query)
		f.logger.Warn("RELEVANCE", "LLM relevance check failed, using keyword fallback", map[string]interface{}{
			"error":    err.Error(),
			"query":    utils.Preview(query, 80),
			"relevant": relevant,
		})
		return Verdict{Relevant: relevant, Stage: StageCoarseFallback}
	}

	upper := strings.ToUpper(answer)
	relevant := strings.Contains(upper, "RELEVANT") && !strings.Contains(upper, "IRRELEVANT")
	f.logger.Debug("RELEVANCE", "LLM relevance verdict", map[string]interface{}{
		"query":    utils.Preview(query, 80),
		"answer":   utils.Preview(answer, 40),
		"relevant": relevant,
	})
	return Verdict{Relevant: relevant, Stage: StageLLM}
}

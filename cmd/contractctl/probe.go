package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"contract-assistant-be/internal/pkg/logger"
	"contract-assistant-be/pkg/assistant"
	"contract-assistant-be/pkg/assistant/intent"
	"contract-assistant-be/pkg/assistant/prompt"
	"contract-assistant-be/pkg/assistant/relevance"
	"contract-assistant-be/pkg/llm/factory"
	"contract-assistant-be/pkg/utils"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newProbeCmd() *cobra.Command {
	var activeType string

	cmd := &cobra.Command{
		Use:   "probe <query> [query...]",
		Short: "Run the relevance filter and intent classifier on queries",
		Long: `probe shows how queries would be routed, using the configured LLM provider.
Use --active to pretend the session already holds a contract of that type.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newProber(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}
			state := intent.State{HasActiveDocument: activeType != "", ActiveTypeLabel: activeType}
			for _, q := range args {
				p.probe(cmd.Context(), q, state)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&activeType, "active", "", "type label of a pretend active contract")
	return cmd
}

type prober struct {
	filter     *relevance.Filter
	classifier intent.Classifier
	out        io.Writer
}

func newProber(ctx context.Context, out io.Writer) (*prober, error) {
	ruleSet, err := loadRules(cfg.Assistant.RulesFilePath)
	if err != nil {
		return nil, err
	}
	provider, err := factory.NewLLMProvider(ctx, factory.Settings{
		Provider:           cfg.Ai.LLMProvider,
		Model:              cfg.Ai.LLMModel,
		GeminiAPIKey:       cfg.Keys.GoogleGemini,
		OllamaBaseURL:      cfg.Ai.OllamaBaseURL,
		HuggingFaceAPIKey:  cfg.Keys.HuggingFace,
		HuggingFaceBaseURL: cfg.Ai.HuggingFaceBaseURL,
	})
	if err != nil {
		return nil, err
	}

	log := logger.NewNopLogger()
	prompts := prompt.NewBuilder(cfg.Assistant.MaxDocumentChars, cfg.Assistant.Jurisdiction)
	return &prober{
		filter:     relevance.NewFilter(ruleSet, prompts, provider, log),
		classifier: intent.NewGuarded(intent.NewLLMClassifier(provider, prompts), ruleSet, log),
		out:        out,
	}, nil
}

func (p *prober) probe(ctx context.Context, query string, state intent.State) {
	fmt.Fprintf(p.out, "%q\n", utils.Preview(query, 100))

	verdict := p.filter.Evaluate(ctx, query)
	if !verdict.Relevant {
		color.New(color.FgYellow).Fprintf(p.out, "  relevance: IRRELEVANT (%s)\n", verdict.Stage)
		return
	}
	color.New(color.FgGreen).Fprintf(p.out, "  relevance: RELEVANT (%s)\n", verdict.Stage)

	cls, err := p.classifier.Classify(ctx, query, state)
	switch {
	case err == nil:
	case assistant.IsKind(err, assistant.KindMissingDraftKeyword):
		color.New(color.FgYellow).Fprintf(p.out, "  intent:    %s rejected (%s)\n", cls.Intent, intent.ReasonNoDraftKeyword)
		return
	default:
		color.New(color.FgRed).Fprintf(p.out, "  intent:    error: %v\n", err)
		return
	}

	line := fmt.Sprintf("  intent:    %s", cls.Intent)
	if cls.Reason != "" {
		line += " (" + cls.Reason + ")"
	}
	if raw := strings.TrimSpace(cls.Raw); raw != "" && raw != cls.Intent.String() {
		line += fmt.Sprintf(" [model said %q]", utils.Preview(raw, 40))
	}
	c := color.New(color.FgCyan)
	if cls.Intent == assistant.IntentInvalid {
		c = color.New(color.FgYellow)
	}
	c.Fprintln(p.out, line)
}

// Package dispatch runs the operation a classified query maps to against the session store.
package dispatch

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"contract-assistant-be/internal/pkg/logger"
	"contract-assistant-be/pkg/assistant"
	"contract-assistant-be/pkg/assistant/analysis"
	"contract-assistant-be/pkg/assistant/intent"
	"contract-assistant-be/pkg/assistant/prompt"
	"contract-assistant-be/pkg/assistant/rules"
	"contract-assistant-be/pkg/assistant/session"
	"contract-assistant-be/pkg/llm"
	"contract-assistant-be/pkg/store"
	"contract-assistant-be/pkg/textformat"
	"contract-assistant-be/pkg/utils"
)

const (
	DefaultTypeLabel = "General Contract"

	// Titles longer than this are not used as a type label.
	maxTitleWords = 8
)

// Outcome is what a successful operation produced. Only the fields relevant to Intent are set.
type Outcome struct {
	Intent    assistant.Intent
	Document  *store.Document // drafted, modified or analyzed document
	Answer    string
	Analysis  *analysis.Result
	Summaries []store.DocumentSummary
}

type Dispatcher struct {
	sessions      *session.Manager
	llm           llm.LLMProvider
	prompts       *prompt.Builder
	rules         *rules.Rules
	maxLineLength int
	logger        logger.ILogger
}

func NewDispatcher(
	sessions *session.Manager,
	provider llm.LLMProvider,
	prompts *prompt.Builder,
	r *rules.Rules,
	maxLineLength int,
	log logger.ILogger,
) *Dispatcher {
	return &Dispatcher{
		sessions:      sessions,
		llm:           provider,
		prompts:       prompts,
		rules:         r,
		maxLineLength: maxLineLength,
		logger:        log,
	}
}

// Dispatch runs cls against sessionID. The caller holds the session lock.
// A failed operation never changes the store.
func (d *Dispatcher) Dispatch(ctx context.Context, sessionID, query string, cls intent.Classification) (*Outcome, error) {
	if cls.Intent == assistant.IntentInvalid {
		if cls.Reason == intent.ReasonNeedsDocument {
			return nil, assistant.Fail(assistant.KindNoActiveDocument, assistant.MessageNoActiveDocument, nil)
		}
		return nil, assistant.Fail(assistant.KindInvalidIntent, assistant.MessageInvalidIntent, nil)
	}

	if cls.Intent == assistant.IntentDraft {
		return d.draft(ctx, sessionID, query)
	}

	s, err := d.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	doc := s.Active()
	if doc == nil {
		return nil, assistant.Fail(assistant.KindNoActiveDocument, assistant.MessageNoActiveDocument, nil)
	}

	switch cls.Intent {
	case assistant.IntentQuestion:
		return d.question(ctx, doc, query, s.Turns)
	case assistant.IntentModify:
		return d.modify(ctx, sessionID, doc, query, s.Turns)
	case assistant.IntentAnalyze:
		return d.Analyze(ctx, doc)
	}
	return nil, assistant.Fail(assistant.KindInvalidIntent, assistant.MessageInvalidIntent, nil)
}

func (d *Dispatcher) draft(ctx context.Context, sessionID, query string) (*Outcome, error) {
	raw, err := d.generate(ctx, d.prompts.Draft(query), "Contract generation failed")
	if err != nil {
		return nil, err
	}

	content := textformat.Normalize(raw, d.maxLineLength)
	label := d.TypeLabel(query, content)

	docID, err := d.sessions.AddDocument(ctx, sessionID, content, label, query)
	if err != nil {
		return nil, err
	}
	doc, err := d.sessions.GetActive(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	summaries, err := d.sessions.ListSummaries(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	d.logger.Info("DISPATCH", "Contract drafted", map[string]interface{}{
		"session_id":    sessionID,
		"document_id":   docID,
		"contract_type": label,
		"chars":         len(content),
	})
	return &Outcome{Intent: assistant.IntentDraft, Document: doc, Summaries: summaries}, nil
}

func (d *Dispatcher) question(ctx context.Context, doc *store.Document, query string, history []store.Turn) (*Outcome, error) {
	answer, err := d.generate(ctx, d.prompts.Question(doc.Content, doc.TypeLabel, query, history...), "Question answering failed")
	if err != nil {
		return nil, err
	}
	return &Outcome{Intent: assistant.IntentQuestion, Document: doc, Answer: answer}, nil
}

// modify rewrites the whole document, so it refuses documents the prompt would truncate.
func (d *Dispatcher) modify(ctx context.Context, sessionID string, doc *store.Document, change string, history []store.Turn) (*Outcome, error) {
	if d.prompts.Document(doc.Content) != doc.Content {
		d.logger.Warn("DISPATCH", "Modification refused for over-budget contract", map[string]interface{}{
			"session_id":  sessionID,
			"document_id": doc.ID,
			"chars":       utf8.RuneCountInString(doc.Content),
			"max_chars":   d.prompts.MaxDocumentChars,
		})
		return nil, assistant.Fail(assistant.KindDocumentTooLarge, assistant.MessageDocumentTooLarge, nil)
	}

	raw, err := d.generate(ctx, d.prompts.Modify(doc.Content, doc.TypeLabel, change, history...), "Contract modification failed")
	if err != nil {
		return nil, err
	}

	updated, err := d.sessions.ApplyModification(ctx, sessionID, textformat.Normalize(raw, d.maxLineLength), change)
	if err != nil {
		return nil, err
	}

	d.logger.Info("DISPATCH", "Contract modified", map[string]interface{}{
		"session_id":    sessionID,
		"document_id":   updated.ID,
		"modifications": len(updated.Modifications),
	})
	return &Outcome{Intent: assistant.IntentModify, Document: updated}, nil
}

// Analyze runs the structured analysis on doc. It never mutates the store.
func (d *Dispatcher) Analyze(ctx context.Context, doc *store.Document) (*Outcome, error) {
	raw, err := d.generate(ctx, d.prompts.Analyze(doc.Content, doc.TypeLabel), "Contract analysis failed")
	if err != nil {
		return nil, err
	}

	res := analysis.Parse(raw)
	res.Text = textformat.Normalize(raw, d.maxLineLength)
	if res.ContractType == "" {
		res.ContractType = doc.TypeLabel
	}
	return &Outcome{Intent: assistant.IntentAnalyze, Document: doc, Analysis: &res}, nil
}

// generate calls the LLM and turns errors or empty output into a KindLLM failure carrying the upstream text.
func (d *Dispatcher) generate(ctx context.Context, p, action string) (string, error) {
	out, err := d.llm.Generate(ctx, p)
	if err == nil && strings.TrimSpace(out) == "" {
		err = llm.ErrEmptyResponse
	}
	if err != nil {
		d.logger.Error("DISPATCH", action, map[string]interface{}{
			"error": err.Error(),
		})
		return "", assistant.Fail(assistant.KindLLM, fmt.Sprintf("%s: %v", action, err), err)
	}
	return strings.TrimSpace(out), nil
}

// TypeLabel names a drafted document: a known type in the query, then a known type or
// the title of the document, then DefaultTypeLabel.
func (d *Dispatcher) TypeLabel(query, content string) string {
	if label, ok := d.rules.DetectContractType(query); ok {
		return label
	}
	title := titleLine(content)
	if title == "" {
		return DefaultTypeLabel
	}
	if label, ok := d.rules.DetectContractType(title); ok {
		return label
	}
	if textformat.IsHeading(title) && len(strings.Fields(title)) <= maxTitleWords {
		return titleCase(title)
	}
	return DefaultTypeLabel
}

func titleLine(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return utils.Truncate(t, 120)
		}
	}
	return ""
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

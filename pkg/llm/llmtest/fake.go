// Package llmtest provides a deterministic LLMProvider for tests.
package llmtest

import (
	"context"
	"strings"
	"sync"

	"contract-assistant-be/pkg/llm"
)

// HandlerFunc produces the canned answer for a prompt.
type HandlerFunc func(prompt string) (string, error)

// Fake records every prompt and answers through Handler.
type Fake struct {
	mu      sync.Mutex
	Handler HandlerFunc
	prompts []string
}

var _ llm.LLMProvider = (*Fake)(nil)

func New(handler HandlerFunc) *Fake {
	return &Fake{Handler: handler}
}

// Static always answers with text.
func Static(text string) *Fake {
	return New(func(string) (string, error) { return text, nil })
}

// Failing always returns err.
func Failing(err error) *Fake {
	return New(func(string) (string, error) { return "", err })
}

func (f *Fake) Generate(ctx context.Context, prompt string, _ ...llm.Option) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	handler := f.Handler
	f.mu.Unlock()

	if handler == nil {
		return "", llm.ErrEmptyResponse
	}
	return handler(prompt)
}

func (f *Fake) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	parts := make([]string, 0, len(history))
	for _, m := range history {
		parts = append(parts, m.Content)
	}
	return f.Generate(ctx, strings.Join(parts, "\n"), opts...)
}

// Prompts returns a copy of every prompt seen so far.
func (f *Fake) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.prompts))
	copy(out, f.prompts)
	return out
}

// Calls is the number of prompts seen so far.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

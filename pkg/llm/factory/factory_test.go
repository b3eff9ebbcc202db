package factory

import (
	"context"
	"testing"

	"contract-assistant-be/pkg/llm/huggingface"
	"contract-assistant-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	ctx := context.Background()

	p, err := NewLLMProvider(ctx, Settings{Provider: "ollama", Model: "llama3"})
	require.NoError(t, err)
	op, ok := p.(*ollama.OllamaProvider)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:11434", op.BaseURL)

	p, err = NewLLMProvider(ctx, Settings{Provider: "huggingface", Model: "m"})
	require.NoError(t, err)
	assert.IsType(t, &huggingface.HuggingFaceProvider{}, p)

	_, err = NewLLMProvider(ctx, Settings{Provider: "gemini"})
	assert.Error(t, err, "gemini without a key must fail")

	_, err = NewLLMProvider(ctx, Settings{Provider: "openai"})
	assert.ErrorContains(t, err, "unsupported LLM provider")
}

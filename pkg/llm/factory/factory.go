package factory

import (
	"context"
	"fmt"

	"contract-assistant-be/pkg/llm"
	"contract-assistant-be/pkg/llm/gemini"
	"contract-assistant-be/pkg/llm/huggingface"
	"contract-assistant-be/pkg/llm/ollama"
)

// Settings selects and configures an LLM backend.
type Settings struct {
	Provider           string
	Model              string
	GeminiAPIKey       string
	OllamaBaseURL      string
	HuggingFaceAPIKey  string
	HuggingFaceBaseURL string
}

func NewLLMProvider(ctx context.Context, s Settings) (llm.LLMProvider, error) {
	switch s.Provider {
	case "gemini", "":
		return gemini.NewGeminiProvider(ctx, s.GeminiAPIKey, s.Model)
	case "ollama":
		baseURL := s.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, s.Model), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(s.HuggingFaceAPIKey, s.HuggingFaceBaseURL, s.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", s.Provider)
	}
}

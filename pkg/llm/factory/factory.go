package factory

import (
	"context"
	"fmt"

	"party-advisor-be/pkg/llm"
	"party-advisor-be/pkg/llm/gemini"
	"party-advisor-be/pkg/llm/ollama"
	"party-advisor-be/pkg/llm/openai"
)

type ProviderConfig struct {
	Provider      string // "gemini", "ollama", "openai"
	Model         string
	GeminiAPIKey  string
	OllamaBaseURL string
	OpenAIAPIKey  string
	OpenAIBaseURL string
}

func NewStreamProvider(ctx context.Context, cfg ProviderConfig) (llm.StreamProvider, error) {
	switch cfg.Provider {
	case "gemini", "":
		return gemini.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.Model)
	case "ollama":
		baseURL := cfg.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model), nil
	case "openai":
		return openai.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

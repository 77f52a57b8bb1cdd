package factory

import (
	"fmt"

	"nutrilokal-be/pkg/llm"
	"nutrilokal-be/pkg/llm/gemini"
	"nutrilokal-be/pkg/llm/ollama"
)

type Config struct {
	Provider      string // "gemini" (default) or "ollama"
	Model         string
	GeminiBaseURL string
	GeminiAPIKey  string
	OllamaBaseURL string
	MaxTokens     int
}

func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "", "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		return gemini.NewGeminiProvider(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.Model, cfg.MaxTokens), nil
	case "ollama":
		return ollama.NewOllamaProvider(cfg.OllamaBaseURL, cfg.Model, cfg.MaxTokens), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}

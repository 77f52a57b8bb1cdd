package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("LLM_MAX_TOKENS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "ollama", cfg.Ai.LLMProvider)
	assert.Equal(t, 1024, cfg.Ai.MaxTokens)
	assert.Equal(t, "https://api.fonnte.com", cfg.WhatsApp.FonnteBaseURL)
}

func TestLoadHasNoCredentialDefaults(t *testing.T) {
	cfg := Load()

	if _, set := lookup("GOOGLE_GEMINI_API_KEY"); !set {
		assert.Empty(t, cfg.Keys.GoogleGemini)
	}
}

func lookup(key string) (string, bool) {
	v := getEnv(key, "\x00")
	return v, v != "\x00"
}

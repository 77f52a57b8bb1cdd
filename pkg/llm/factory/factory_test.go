package factory

import (
	"testing"

	"nutrilokal-be/pkg/llm/gemini"
	"nutrilokal-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	p, err := NewLLMProvider(Config{Provider: "gemini", GeminiAPIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &gemini.GeminiProvider{}, p)

	p, err = NewLLMProvider(Config{GeminiAPIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &gemini.GeminiProvider{}, p)

	p, err = NewLLMProvider(Config{Provider: "ollama", Model: "llama3"})
	require.NoError(t, err)
	assert.IsType(t, &ollama.OllamaProvider{}, p)
}

func TestNewLLMProviderRejects(t *testing.T) {
	_, err := NewLLMProvider(Config{Provider: "gemini"})
	assert.Error(t, err, "no credential defaults")

	_, err = NewLLMProvider(Config{Provider: "huggingface"})
	assert.Error(t, err)
}

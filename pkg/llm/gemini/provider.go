package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nutrilokal-be/pkg/llm"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-1.5-flash-latest"

	roleUser  = "user"
	roleModel = "model"
)

var ErrEmptyResponse = errors.New("gemini returned no candidates")

type GeminiProvider struct {
	client    *resty.Client
	modelName string
	maxTokens int
}

var _ llm.LLMProvider = &GeminiProvider{}

// NewGeminiProvider builds a client for the generateContent endpoint. The
// API key travels in the x-goog-api-key header, never in the URL.
func NewGeminiProvider(baseURL, apiKey, modelName string, maxTokens int) *GeminiProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if modelName == "" {
		modelName = DefaultModel
	}
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	return &GeminiProvider{
		client: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetHeader("Content-Type", "application/json").
			SetHeader("x-goog-api-key", apiKey).
			SetTimeout(60 * time.Second),
		modelName: modelName,
		maxTokens: maxTokens,
	}
}

// --- Request/Response structs (Internal to this package) ---

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type candidate struct {
	Content content `json:"content"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

// --- Interface Implementation ---

func (g *GeminiProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	options := llm.ApplyOptions(llm.Options{
		Temperature: 0.7,
		MaxTokens:   g.maxTokens,
	}, opts...)

	model := g.modelName
	if options.Model != "" {
		model = options.Model
	}

	payload := generateRequest{
		Contents: toContents(history),
		GenerationConfig: generationConfig{
			Temperature:     options.Temperature,
			MaxOutputTokens: options.MaxTokens,
		},
	}

	var result generateResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&result).
		SetPathParam("model", model).
		Post("/models/{model}:generateContent")
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("gemini error: status %d, body: %s", resp.StatusCode(), resp.String())
	}

	text := firstText(result)
	if text == "" {
		return "", ErrEmptyResponse
	}

	// Replies are shown as plain text.
	return strings.ReplaceAll(text, "**", ""), nil
}

func (g *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return g.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, opts...)
}

// toContents maps turns onto Gemini roles. Gemini has no system role here, so
// instructions go out as an ordinary user turn in their original position.
func toContents(history []llm.Message) []content {
	contents := make([]content, 0, len(history))
	for _, msg := range history {
		role := roleUser
		if msg.Role == llm.RoleAssistant || msg.Role == roleModel {
			role = roleModel
		}

		parts := make([]part, 0, 1+len(msg.Images))
		if msg.Content != "" {
			parts = append(parts, part{Text: msg.Content})
		}
		for _, img := range msg.Images {
			mime := img.MimeType
			if mime == "" {
				mime = "image/jpeg"
			}
			parts = append(parts, part{InlineData: &inlineData{MimeType: mime, Data: img.Data}})
		}
		if len(parts) == 0 {
			continue
		}

		contents = append(contents, content{Role: role, Parts: parts})
	}
	return contents
}

func firstText(res generateResponse) string {
	if len(res.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range res.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

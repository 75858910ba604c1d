package extractor

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/medwatch/disease-insights-api/interfaces"
)

// GeminiGenerator implements interfaces.TextGenerator on top of the Gemini
// API. The client is created once and reused across requests.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// Compile-time check to ensure GeminiGenerator implements TextGenerator
var _ interfaces.TextGenerator = (*GeminiGenerator)(nil)

// NewGeminiGenerator creates a Gemini-backed text generator.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is empty")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate performs one chat-style completion: a system instruction plus one
// user message, returning the raw completion text untouched.
func (g *GeminiGenerator) Generate(ctx context.Context, system, user string) (string, error) {
	contents := []*genai.Content{
		{
			Parts: []*genai.Part{
				{Text: user},
			},
		},
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{
				{Text: system},
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("gemini GenerateContent failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}

	return text, nil
}

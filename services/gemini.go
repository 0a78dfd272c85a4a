package services

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"fitness-ai-assistant/models"
)

// GeminiGenerator answers through the Google Gemini API
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Gemini client
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: GOOGLE_GEMINI_API_KEY is not set", ErrFallbackUnavailable)
	}
	if model == "" {
		model = "gemini-2.5-flash"
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

func (g *GeminiGenerator) Name() string {
	return "gemini"
}

// Generate sends the history with the profile-aware system instruction
func (g *GeminiGenerator) Generate(ctx context.Context, prompt Prompt) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, geminiContents(prompt.History), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.Instructions(), genai.RoleUser),
	})
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("no response from Gemini")
	}
	return text, nil
}

// geminiContents maps each history entry to its Gemini role
func geminiContents(history []models.ChatMessage) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		role := genai.Role(genai.RoleUser)
		if msg.Role == models.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}
	return contents
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"fitness-ai-assistant/models"
)

// AnthropicGenerator answers through the Anthropic Messages API
type AnthropicGenerator struct {
	client    anthropic.Client
	model     string
	maxTokens int
}

// NewAnthropicGenerator creates an Anthropic client. Extra options (such as a
// base URL) are passed through to the SDK.
func NewAnthropicGenerator(apiKey, model string, maxTokens int, opts ...option.RequestOption) (*AnthropicGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: ANTHROPIC_API_KEY is not set", ErrFallbackUnavailable)
	}
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	client := anthropic.NewClient(append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)...)

	return &AnthropicGenerator{client: client, model: model, maxTokens: maxTokens}, nil
}

func (a *AnthropicGenerator) Name() string {
	return "anthropic"
}

func (a *AnthropicGenerator) Generate(ctx context.Context, prompt Prompt) (string, error) {
	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: int64(a.maxTokens),
		System:    []anthropic.TextBlockParam{{Text: prompt.Instructions()}},
		Messages:  anthropicMessages(prompt.History),
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	var reply strings.Builder
	for _, content := range msg.Content {
		if content.Type == "text" {
			reply.WriteString(content.Text)
		}
	}
	if reply.Len() == 0 {
		return "", fmt.Errorf("no response from Anthropic")
	}
	return strings.TrimSpace(reply.String()), nil
}

func anthropicMessages(history []models.ChatMessage) []anthropic.MessageParam {
	messages := make([]anthropic.MessageParam, 0, len(history))
	for _, msg := range history {
		if msg.Role == models.RoleAssistant {
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
			continue
		}
		messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
	}
	return messages
}

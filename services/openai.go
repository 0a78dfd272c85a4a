package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"fitness-ai-assistant/models"
)

// OpenAIGenerator answers through any OpenAI-compatible chat completions API
type OpenAIGenerator struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIGenerator creates a client for baseURL (empty means api.openai.com)
func NewOpenAIGenerator(apiKey, baseURL, model string, maxTokens int) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: OPENAI_API_KEY is not set", ErrFallbackUnavailable)
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}

	return &OpenAIGenerator{
		client:    openai.NewClientWithConfig(cfg),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

func (o *OpenAIGenerator) Name() string {
	return "openai"
}

func (o *OpenAIGenerator) Generate(ctx context.Context, prompt Prompt) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.model,
		MaxTokens: o.maxTokens,
		Messages:  openAIMessages(prompt),
	})
	if err != nil {
		return "", fmt.Errorf("openAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func openAIMessages(prompt Prompt) []openai.ChatCompletionMessage {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: prompt.Instructions()},
	}
	for _, msg := range prompt.History {
		role := openai.ChatMessageRoleUser
		if msg.Role == models.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}
	return messages
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"fitness-ai-assistant/models"
)

// OllamaGenerator answers through a local Ollama server's /api/chat endpoint
type OllamaGenerator struct {
	baseURL string
	model   string
	client  *http.Client
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
}

// NewOllamaGenerator creates a client for the Ollama server at baseURL
func NewOllamaGenerator(baseURL, model string) (*OllamaGenerator, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("%w: OLLAMA_URL is not set", ErrFallbackUnavailable)
	}
	return &OllamaGenerator{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{},
	}, nil
}

func (o *OllamaGenerator) Name() string {
	return "ollama"
}

func (o *OllamaGenerator) Generate(ctx context.Context, prompt Prompt) (string, error) {
	messages := []ollamaMessage{{Role: "system", Content: prompt.Instructions()}}
	for _, h := range prompt.History {
		role := "user"
		if h.Role == models.RoleAssistant {
			role = "assistant"
		}
		messages = append(messages, ollamaMessage{Role: role, Content: h.Content})
	}

	body, err := json.Marshal(ollamaChatRequest{Model: o.model, Messages: messages, Stream: false})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama API error: %s", string(bodyBytes))
	}

	var result ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}

	reply := strings.TrimSpace(result.Message.Content)
	if reply == "" {
		return "", fmt.Errorf("no response from Ollama")
	}
	return reply, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fitness-ai-assistant/config"
	"fitness-ai-assistant/models"
)

// ErrFallbackUnavailable is returned when the fallback provider is not configured
var ErrFallbackUnavailable = errors.New("fallback assistant unavailable")

// Generator produces a free-text reply for messages no command recognizes
type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
	Name() string
}

// Prompt is everything a provider needs for one fallback call. History ends
// with the message being answered.
type Prompt struct {
	System  string
	Profile models.Profile
	History []models.ChatMessage
}

// Instructions joins the system prompt with a snapshot of the user profile
func (p Prompt) Instructions() string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(p.System))
	b.WriteString("\n\nUSER PROFILE (may be empty):\n")

	empty := true
	for _, field := range models.ProfileFields {
		if v := p.Profile[field]; v != "" {
			fmt.Fprintf(&b, "- %s: %s\n", field, v)
			empty = false
		}
	}
	if empty {
		b.WriteString("(none)\n")
	}
	return b.String()
}

const systemPrompt = `You are GymAI, a friendly and knowledgeable fitness assistant.

Goals:
- Be supportive, clear, and simple.
- Keep answers short unless the user asks for more detail.
- Offer follow-ups naturally when the user wants more information.
- Adapt to the user's tone and fitness level.

Profile mode:
If the user wants a fitness profile or a custom plan, collect the missing fields one at a time
(age, weight, height, gender, goal, level, training_days, equipment) and tell the user they can
save each one with "profile <field> <value>". When the profile is complete, summarize it and ask
whether they want a workout plan, a nutrition plan, or both.

Built-in calculators the user can type directly:
bmi <weight> <height>, calories <weight> <height> <age> <gender> <low|medium|high>,
meal calories <item, item>, workout <goal> <level>, duration <sets> <reps> <rest>,
bodyfat <weight> <height> <age> <gender>, idealweight <height> <gender>,
protein <weight> [activity], water <weight> [activity], heartrate <age>,
macros <calories> [goal], meal plan [name].

Behavior:
- If a request is unclear, ask a gentle clarifying question.
- If a message is not fitness related, answer normally.
- Never write long multi-section essays unless asked.`

// NewGenerator builds the provider selected by cfg.AIProvider
func NewGenerator(ctx context.Context, cfg *config.Config) (Generator, error) {
	switch cfg.AIProvider {
	case config.ProviderOpenAI:
		return NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.MaxTokens)
	case config.ProviderAnthropic:
		return NewAnthropicGenerator(cfg.AnthropicAPIKey, cfg.AnthropicModel, cfg.MaxTokens)
	case config.ProviderOllama:
		return NewOllamaGenerator(cfg.OllamaURL, cfg.OllamaModel)
	case config.ProviderGemini, "":
		return NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.AIProvider)
	}
}

// unavailableGenerator stands in when the provider could not be configured so
// that commands keep working and fallback calls fail with ErrFallbackUnavailable.
type unavailableGenerator struct {
	name   string
	reason error
}

// Unavailable returns a Generator whose calls always fail
func Unavailable(name string, reason error) Generator {
	return unavailableGenerator{name: name, reason: reason}
}

func (u unavailableGenerator) Generate(ctx context.Context, prompt Prompt) (string, error) {
	if u.reason != nil {
		return "", fmt.Errorf("%w: %v", ErrFallbackUnavailable, u.reason)
	}
	return "", ErrFallbackUnavailable
}

func (u unavailableGenerator) Name() string {
	return u.name
}

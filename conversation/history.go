// Package conversation keeps the ordered message history of one exchange.
package conversation

import "fitness-ai-assistant/models"

// History is an append-only copy of a caller's conversation. The caller's
// slice is never written to.
type History struct {
	messages []models.ChatMessage
}

// New copies prior into a fresh History. A nil prior starts empty.
func New(prior []models.ChatMessage) *History {
	messages := make([]models.ChatMessage, len(prior), len(prior)+2)
	copy(messages, prior)
	return &History{messages: messages}
}

// Append adds a message at the end
func (h *History) Append(role models.Role, content string) {
	h.messages = append(h.messages, models.ChatMessage{Role: role, Content: content})
}

// AppendUser adds a user message
func (h *History) AppendUser(content string) {
	h.Append(models.RoleUser, content)
}

// AppendAssistant adds an assistant message
func (h *History) AppendAssistant(content string) {
	h.Append(models.RoleAssistant, content)
}

// Messages returns a copy of the history in chronological order
func (h *History) Messages() []models.ChatMessage {
	out := make([]models.ChatMessage, len(h.messages))
	copy(out, h.messages)
	return out
}

// Len returns the number of messages
func (h *History) Len() int {
	return len(h.messages)
}

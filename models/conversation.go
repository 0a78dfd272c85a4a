package models

import "time"

// Role of a chat message author
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatMessage is a single message exchanged with the assistant
type ChatMessage struct {
	Role    Role   `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content"`
}

// ChatRequest represents an incoming chat message with optional prior history
type ChatRequest struct {
	Message string        `json:"message" binding:"required"`
	History []ChatMessage `json:"history" binding:"omitempty,dive"`
}

// ChatResponse is the reply plus the updated history the caller should send next time
type ChatResponse struct {
	Reply   string        `json:"reply"`
	History []ChatMessage `json:"history"`
}

// ConversationLog is one recorded exchange
type ConversationLog struct {
	ID        int       `json:"id"`
	UserInput string    `json:"user_input"`
	Reply     string    `json:"reply"`
	Timestamp time.Time `json:"timestamp"`
}

// LogsQuery selects how many recorded exchanges to return
type LogsQuery struct {
	Limit int `form:"limit" binding:"min=1,max=200"`
}

// LogsResponse lists recorded exchanges, newest first
type LogsResponse struct {
	Logs []ConversationLog `json:"logs"`
}

// Package handlers exposes the assistant over HTTP.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"fitness-ai-assistant/chatlog"
	"fitness-ai-assistant/metrics"
	"fitness-ai-assistant/models"
	"fitness-ai-assistant/profile"
)

// ServiceName is reported by the health endpoints
const ServiceName = "Fitness AI Assistant"

// Responder answers chat messages
type Responder interface {
	Respond(ctx context.Context, message string, prior []models.ChatMessage) (string, []models.ChatMessage)
}

// Handler holds the dependencies of every route
type Handler struct {
	chat     Responder
	profiles profile.Store
	logs     chatlog.Reader
	metrics  *metrics.Metrics
}

// New creates a Handler. A nil logs reader disables the log listing route.
func New(chat Responder, profiles profile.Store, logs chatlog.Reader, m *metrics.Metrics) *Handler {
	return &Handler{chat: chat, profiles: profiles, logs: logs, metrics: m}
}

// Health reports that the service is up
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "running",
		"service": ServiceName,
	})
}

// NoFrontend answers "/" when no frontend build is installed
func (h *Handler) NoFrontend(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "running",
		"service": ServiceName,
		"message": "Frontend not found",
	})
}

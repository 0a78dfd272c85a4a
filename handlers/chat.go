package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fitness-ai-assistant/models"
)

// Chat answers one message. Command replies and fallback failures are both
// 200 responses; only malformed requests are rejected.
func (h *Handler) Chat(c *gin.Context) {
	var req models.ChatRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	requestLogger(c).Debugw("Chat request", "message", req.Message, "history", len(req.History))

	reply, history := h.chat.Respond(c.Request.Context(), req.Message, req.History)

	c.JSON(http.StatusOK, models.ChatResponse{Reply: reply, History: history})
}

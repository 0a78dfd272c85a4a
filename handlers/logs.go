package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitness-ai-assistant/models"
)

const defaultLogsLimit = 20

// ListLogs returns the most recent recorded exchanges
func (h *Handler) ListLogs(c *gin.Context) {
	query := models.LogsQuery{Limit: defaultLogsLimit}

	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logs, err := h.logs.Recent(c.Request.Context(), query.Limit)
	if err != nil {
		requestLogger(c).Errorf("Failed to read conversation log: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read conversation log"})
		return
	}
	if logs == nil {
		logs = []models.ConversationLog{}
	}

	c.JSON(http.StatusOK, models.LogsResponse{Logs: logs})
}

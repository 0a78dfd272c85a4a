package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitness-ai-assistant/models"
	"fitness-ai-assistant/profile"
)

// GetProfile returns the stored profile and the fields still missing
func (h *Handler) GetProfile(c *gin.Context) {
	h.respondProfile(c)
}

// UpdateProfile merges the given fields into the profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req models.ProfileUpdateRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields, err := profile.Normalize(req.Fields)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.profiles.Update(c.Request.Context(), fields); err != nil {
		requestLogger(c).Errorf("Failed to update profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	h.respondProfile(c)
}

// ResetProfile clears every field
func (h *Handler) ResetProfile(c *gin.Context) {
	if err := h.profiles.Reset(c.Request.Context()); err != nil {
		requestLogger(c).Errorf("Failed to reset profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset profile"})
		return
	}

	h.respondProfile(c)
}

func (h *Handler) respondProfile(c *gin.Context) {
	p, err := h.profiles.Get(c.Request.Context())
	if err != nil {
		requestLogger(c).Errorf("Failed to load profile: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, models.ProfileResponse{Profile: p, Missing: profile.MissingFields(p)})
}

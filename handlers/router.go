package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RouterConfig holds the settings NewRouter needs
type RouterConfig struct {
	FrontendDir    string
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter wires every route and middleware
func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(h.metrics))

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	limiter := NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, h.metrics)

	router.GET("/health", h.Health)
	router.POST("/chat", limiter.Middleware(), h.Chat)

	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics.Handler()))
	}

	// API routes
	api := router.Group("/api")
	{
		api.POST("/chat", limiter.Middleware(), h.Chat)

		api.GET("/profile", h.GetProfile)
		api.PUT("/profile", h.UpdateProfile)
		api.DELETE("/profile", h.ResetProfile)

		if h.logs != nil {
			api.GET("/logs", h.ListLogs)
		}
	}

	// Serve static files (frontend) when present
	index := filepath.Join(cfg.FrontendDir, "index.html")
	if _, err := os.Stat(index); cfg.FrontendDir != "" && err == nil {
		router.Static("/static", cfg.FrontendDir)
		router.StaticFile("/", index)
	} else {
		router.GET("/", h.NoFrontend)
	}

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return router
}

package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tablecreole/contact-api/internal/config"
	"github.com/tablecreole/contact-api/internal/handlers"
	"github.com/tablecreole/contact-api/internal/pipeline"
	"github.com/tablecreole/contact-api/internal/ratelimit"
)

// NewRouter wires the public endpoints.
// Public: /health
// Rate limited: POST /api/contact
func NewRouter(cfg config.Config, limiter *ratelimit.Limiter, pipe *pipeline.Pipeline) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(handlers.RequestIDMiddleware())
	r.Use(handlers.CORS(cfg.FrontendURL))

	// Liveness: confirms the process is running.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	contact := r.Group("/")
	contact.Use(limiter.Middleware())
	handlers.RegisterContactRoutes(contact, pipe, cfg.Debug)

	return r
}

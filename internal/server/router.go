package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the HTTP surface: tracing, logging and panic recovery
// middleware plus the procurement-request routes.
func NewRouter(handler *RequestHandler, logger *slog.Logger) *gin.Engine {
	router := gin.New()

	router.Use(RequestID())
	router.Use(Recovery(logger))
	router.Use(RequestLogger(logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/uploads", handler.Upload)
		api.GET("/uploads/:id/content", handler.GetContent)

		api.GET("/requests", handler.List)
		api.GET("/requests/export", handler.Export)
		api.GET("/requests/:id", handler.Get)
		api.PATCH("/requests/:id", handler.Update)
		api.DELETE("/requests/:id", handler.Delete)
	}

	return router
}

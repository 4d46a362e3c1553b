package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cupid-backend/internal/shared/middleware"
	"cupid-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	// Liveness probe
	router.GET("/", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "💘 CUPID API Running")
	})

	api := router.Group("/api")
	{
		api.GET("/health", healthCheckHandler(c))

		api.POST("/create", c.LoveHandler.Create)
		api.GET("/love/:id", c.LoveHandler.GetByID)
	}

	// Local storage deployments serve uploaded assets read-only
	if dir := c.LocalStorageDir(); dir != "" {
		router.Static(c.Config.Storage.LocalURLPrefix, dir)
	}

	return router
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"name":      c.Config.App.Name,
			"version":   c.Config.App.Version,
			"timestamp": time.Now().UTC(),
		}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			health["status"] = "degraded"
			health["database"] = err.Error()
			ctx.JSON(http.StatusServiceUnavailable, health)
			return
		}
		health["database"] = "ok"

		ctx.JSON(http.StatusOK, health)
	}
}

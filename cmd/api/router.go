package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"courseware-backend/internal/shared/middleware"
	"courseware-backend/pkg/container"
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

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		// Mọi route authoring cần access token
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(c.JWTManager))

		c.CourseHandler.RegisterRoutes(protected)
		c.LessonHandler.RegisterRoutes(protected)
	}

	return router
}

// ========================================
// HEALTH CHECK
// ========================================

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		services := appCtx.HealthCheck(ctx)

		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  services,
		}

		// Cache lỗi chỉ làm degraded, store lỗi thì 503
		statusCode := http.StatusOK
		if services["database"] != "healthy" {
			health["status"] = "unavailable"
			statusCode = http.StatusServiceUnavailable
		} else if services["cache"] != "healthy" {
			health["status"] = "degraded"
		}

		c.JSON(statusCode, health)
	}
}

package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"modelhub-backend/internal/shared/middleware"
	"modelhub-backend/pkg/container"
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

	router.GET("/health", healthCheckHandler(c))

	setupAccountRoutes(router, c)
	setupModelRoutes(router, c)

	return router
}

// ========================================
// ACCOUNT / AUTH ROUTES
// ========================================
func setupAccountRoutes(r *gin.Engine, c *container.Container) {
	r.POST("/register", c.AccountHandler.Register)
	r.POST("/token", c.AccountHandler.Token)
	r.GET("/me", middleware.AuthMiddleware(c.AccountService), c.AccountHandler.Me)
}

// ========================================
// MODEL ROUTES
// ========================================
func setupModelRoutes(r *gin.Engine, c *container.Container) {
	models := r.Group("/models")
	{
		models.POST("/upload", middleware.AuthMiddleware(c.AccountService), c.ArtifactHandler.Upload)
		models.GET("/versions", c.ArtifactHandler.ListVersions)
		models.GET("/:version", c.ArtifactHandler.GetVersion)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = "error"
				health["status"] = "degraded"
			}
		}

		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = "error"
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, health)
	}
}

package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookrec-backend/internal/shared/middleware"
	"bookrec-backend/pkg/container"
)

func setupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthHandler(c.DB.HealthCheck, c.Cache.Ping, c.Config.App.Version))

		books := v1.Group("/books")
		{
			books.GET("", c.BookHandler.ListBooks)
			books.GET("/suggest", c.BookHandler.Suggest)
			books.GET("/:id", c.BookHandler.GetBookDetail)
			books.POST("/:id/recommendations", c.RecHandler.Attach)
		}

		v1.POST("/submissions", c.RecHandler.Submit)
	}

	return router
}

// healthHandler reports database and cache status. Database failure makes
// the service unhealthy; Redis is degraded-but-serving.
func healthHandler(dbCheck, cacheCheck func(context.Context) error, version string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		overall := "healthy"
		statusCode := http.StatusOK
		dbStatus := "ok"
		if err := dbCheck(ctx.Request.Context()); err != nil {
			overall = "unhealthy"
			statusCode = http.StatusServiceUnavailable
			dbStatus = "down"
		}

		cacheStatus := "ok"
		if err := cacheCheck(ctx.Request.Context()); err != nil {
			cacheStatus = "degraded"
			if overall == "healthy" {
				overall = "degraded"
			}
		}

		ctx.JSON(statusCode, gin.H{
			"status":   overall,
			"version":  version,
			"database": dbStatus,
			"cache":    cacheStatus,
		})
	}
}

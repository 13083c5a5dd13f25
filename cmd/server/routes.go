// Package main provides the campus chatbot server entry point.
package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/greenuni-dev/campus-chatbot-go/internal/api"
	"github.com/greenuni-dev/campus-chatbot-go/internal/config"
	"github.com/greenuni-dev/campus-chatbot-go/internal/engine"
)

// setupRoutes configures all HTTP routes
func setupRoutes(router *gin.Engine, handler *api.Handler, eng *engine.Engine, cfg *config.Config, registry *prometheus.Registry) {
	// Root endpoint - redirect to project page
	rootHandler := func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "https://github.com/greenuni-dev/campus-chatbot-go")
	}
	router.GET("/", rootHandler)
	router.HEAD("/", rootHandler)

	// Liveness Probe - checks if the application is alive (minimal check)
	// This should NEVER check dependencies - only that the process is running
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	router.GET("/healthz", healthHandler)
	router.HEAD("/healthz", healthHandler)

	// Readiness Probe - ready once the engine has records to rank. An
	// empty knowledge base still serves fallback answers, so it only
	// degrades readiness, it does not fail it.
	readyHandler := func(c *gin.Context) {
		stats := eng.Stats()
		if stats.TotalRecords == 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": "knowledge base is empty",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":            "ready",
			"available_records": stats.AvailableRecords,
			"blocked_answers":   stats.BlockedAnswers,
		})
	}
	router.GET("/ready", readyHandler)
	router.HEAD("/ready", readyHandler)

	// Chat API endpoints
	router.POST("/chat", handler.Chat)
	router.POST("/feedback", handler.Feedback)
	router.GET("/stats", handler.Stats)
	router.POST("/analyze", handler.Analyze)
	router.POST("/reset", handler.Reset)

	// Prometheus metrics endpoint, behind basic auth when a password is set
	metricsHandler := gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	if cfg.MetricsPassword != "" {
		authorized := router.Group("/", gin.BasicAuth(gin.Accounts{
			cfg.MetricsUsername: cfg.MetricsPassword,
		}))
		authorized.GET("/metrics", metricsHandler)
	} else {
		router.GET("/metrics", metricsHandler)
	}
}

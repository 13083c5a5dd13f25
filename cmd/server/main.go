// Package main provides the campus chatbot server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/greenuni-dev/campus-chatbot-go/internal/api"
	"github.com/greenuni-dev/campus-chatbot-go/internal/config"
	"github.com/greenuni-dev/campus-chatbot-go/internal/corpus"
	"github.com/greenuni-dev/campus-chatbot-go/internal/engine"
	"github.com/greenuni-dev/campus-chatbot-go/internal/logger"
	"github.com/greenuni-dev/campus-chatbot-go/internal/metrics"
	"github.com/greenuni-dev/campus-chatbot-go/internal/normalize"
	"github.com/greenuni-dev/campus-chatbot-go/internal/store"
)

// HTTP server timeouts. Requests are small JSON bodies; the generous
// write timeout covers rebuilds triggered by dislike feedback.
const (
	httpReadTimeout  = 10 * time.Second
	httpWriteTimeout = 30 * time.Second
	httpIdleTimeout  = 120 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	log.Info("Starting campus chatbot server")

	records, err := corpus.Load(cfg.DataFile)
	if err != nil {
		log.WithError(err).Fatal("Failed to load knowledge base")
	}
	log.WithField("records", len(records)).WithField("path", cfg.DataFile).Info("Knowledge base loaded")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())
	m := metrics.New(registry)
	log.Info("Metrics initialized")

	norm, err := normalize.New()
	if err != nil {
		log.WithError(err).Fatal("Failed to initialize normalizer")
	}

	engineCfg := engine.DefaultConfig()
	engineCfg.Threshold = cfg.SearchThreshold
	engineCfg.TopK = cfg.SearchTopK

	eng, err := engine.New(engine.Options{
		Records:    records,
		Normalizer: norm,
		Store:      store.New(cfg.ExclusionPath(), cfg.FeedbackPath(), log),
		Config:     engineCfg,
		Logger:     log,
		Metrics:    m,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to build ranking engine")
	}
	log.Info("Ranking engine ready")

	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(securityHeadersMiddleware())
	router.Use(loggingMiddleware(log))

	setupRoutes(router, api.NewHandler(eng, m, log), eng, cfg, registry)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  httpReadTimeout,
		WriteTimeout: httpWriteTimeout,
		IdleTimeout:  httpIdleTimeout,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	log.Info("Server stopped")
}

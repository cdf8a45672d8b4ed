// Package api exposes the interaction graph over HTTP.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/drug-interaction-server/internal/domain"
	"github.com/drug-interaction-server/internal/graph"
	"github.com/drug-interaction-server/internal/middleware"
	"github.com/drug-interaction-server/internal/service"
)

// Server represents the HTTP server
type Server struct {
	configManager domain.ConfigManager
	provider      *graph.Provider
	checker       *service.InteractionService
	risk          *service.RiskAggregator
	log           *logrus.Logger
	router        *gin.Engine
	server        *http.Server
}

// NewServer creates a new HTTP server instance
func NewServer(
	configManager domain.ConfigManager,
	provider *graph.Provider,
	checker *service.InteractionService,
	risk *service.RiskAggregator,
	logger *logrus.Logger,
) *Server {
	cfg := configManager.GetConfig()

	// Set Gin mode based on environment
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.AuditLogger())
	router.Use(corsMiddleware())
	if cfg.Server.RateLimitRPS > 0 {
		router.Use(middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateBurst).Handler())
	}

	server := &Server{
		configManager: configManager,
		provider:      provider,
		checker:       checker,
		risk:          risk,
		log:           logger,
		router:        router,
	}

	// Setup routes
	server.setupRoutes()

	return server
}

// Router exposes the configured handler, for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.configManager.GetServerConfig()
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("HTTP server listening")
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s.log.Info("Shutting down HTTP server")
	return s.server.Shutdown(shutdownCtx)
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.router.GET("/health", s.handleHealth)

	// API v1 routes
	v1 := s.router.Group("/api/v1")
	{
		v1.GET("/drugs", s.handleListDrugs)
		v1.GET("/drugs/:id", s.handleGetDrug)
		v1.GET("/drugs/:id/statistics", s.handleDrugStatistics)
		v1.GET("/drugs/:id/alternatives", s.handleAlternatives)
		v1.GET("/search", s.handleSearch)
		v1.GET("/similarity", s.handleSimilarity)
		v1.GET("/pathways", s.handlePathways)
		v1.POST("/interactions/check", s.handleCheckInteractions)
	}
}

// corsMiddleware adds CORS headers to responses
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-Correlation-ID")
		c.Header("Access-Control-Expose-Headers", "Content-Length")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

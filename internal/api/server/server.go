// Package server assembles the gin HTTP server for the media API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dealerpress/media-library/internal/api/middleware"
	"github.com/dealerpress/media-library/internal/api/rest"
	"github.com/dealerpress/media-library/internal/logger"
	"github.com/dealerpress/media-library/internal/messaging"
	"github.com/dealerpress/media-library/internal/storage"
	"github.com/dealerpress/media-library/internal/store"
	"github.com/dealerpress/media-library/internal/thumbnail"
)

// Config holds the server configuration
type Config struct {
	Debug        bool
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	MaxFileSize  int64
	Auth         middleware.AuthConfig
}

// Server wraps the HTTP server
type Server struct {
	config     Config
	store      store.Store
	blobs      *storage.Disk
	publisher  messaging.Publisher
	thumbs     *thumbnail.Generator
	httpServer *http.Server
}

// New creates a new media API server
func New(cfg Config, st store.Store, blobs *storage.Disk, publisher messaging.Publisher, thumbs *thumbnail.Generator) *Server {
	return &Server{
		config:    cfg,
		store:     st,
		blobs:     blobs,
		publisher: publisher,
		thumbs:    thumbs,
	}
}

// Start initializes and starts the HTTP server
func (s *Server) Start() error {
	// Set Gin mode based on debug flag
	if s.config.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()

	// Setup middleware
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.SetupCORS())

	// Stored bytes are served directly from disk
	router.Static("/media", s.blobs.Root())

	// Setup REST routes
	handler := rest.NewHandler(s.store, s.blobs, s.publisher, s.thumbs, s.config.MaxFileSize)
	rest.SetupRoutes(router, handler, s.config.Auth)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	logger.Info("Starting media API server",
		zap.String("address", addr),
	)

	// Start server
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("Shutting down media API server")

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	return nil
}

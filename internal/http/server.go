// Package http provides the local HTTP API server, its middleware and the metrics server.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/honeydid/honeydid/internal/config"
	documentHTTP "github.com/honeydid/honeydid/internal/document/http"
	exportDomain "github.com/honeydid/honeydid/internal/export/domain"
	"github.com/honeydid/honeydid/internal/httputil"
	"github.com/honeydid/honeydid/internal/metrics"
)

// maxRequestBodyBytes fits the largest importable file sent base64 encoded inside JSON.
const maxRequestBodyBytes = exportDomain.MaxImportSize/3*4 + 1<<20

// rateLimitCleanupInterval is how often idle per-IP limiters are dropped.
const rateLimitCleanupInterval = 5 * time.Minute

// ReadinessProbe reports whether local storage is usable.
type ReadinessProbe interface {
	Ping(ctx context.Context) error
}

// Server represents the local HTTP API server.
type Server struct {
	server  *http.Server
	logger  *slog.Logger
	router  *gin.Engine
	storage ReadinessProbe
}

// NewServer creates a new HTTP server. SetupRouter must be called before Start.
func NewServer(
	storage ReadinessProbe,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		storage: storage,
		logger:  logger,
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// SetupRouter registers middleware and routes. Background middleware work stops when ctx is done.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	documentHandler *documentHTTP.DocumentHandler,
	exportHandler *documentHTTP.ExportHandler,
	accountHandler *documentHTTP.AccountHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, httputil.ErrorResponse{
			Error:   "not_found",
			Message: "Route not found",
		})
	})

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	v1.Use(MaxBodySizeMiddleware(maxRequestBodyBytes))
	if cfg.RateLimitEnabled {
		v1.Use(RateLimitMiddleware(
			ctx,
			cfg.RateLimitRequestsPerSec,
			cfg.RateLimitBurst,
			rateLimitCleanupInterval,
			s.logger,
		))
	}

	{
		v1.GET("/document", documentHandler.GetHandler)
		v1.PUT("/document", documentHandler.UpdateHandler)
		v1.GET("/print", documentHandler.PrintHandler)
	}

	{
		v1.POST("/export", exportHandler.ExportSingleHandler)
		v1.POST("/export/questions", exportHandler.ExportQuestionsHandler)
		v1.POST("/import", exportHandler.ImportHandler)
		v1.POST("/import/inspect", exportHandler.InspectHandler)
		v1.POST("/recovery-card", exportHandler.RecoveryCardHandler)
		v1.GET("/passphrase", exportHandler.PassphraseHandler)
	}

	{
		v1.GET("/app-password", accountHandler.PasswordStatusHandler)
		v1.POST("/app-password", accountHandler.SetPasswordHandler)
		v1.PUT("/app-password", accountHandler.ChangePasswordHandler)
		v1.POST("/app-password/verify", accountHandler.VerifyPasswordHandler)
		v1.POST("/clear", accountHandler.ClearHandler)
		v1.POST("/force-clear", accountHandler.ForceClearHandler)
		v1.GET("/settings", accountHandler.GetSettingsHandler)
		v1.PUT("/settings", accountHandler.UpdateSettingsHandler)
	}

	s.router = router
	s.server.Handler = router
}

// GetHandler returns the configured router.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves requests until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return errors.New("router not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) readinessHandler(c *gin.Context) {
	status := "ok"
	if s.storage == nil || s.storage.Ping(c.Request.Context()) != nil {
		status = "error"
	}

	if status != "ok" {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"storage": status},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"storage": status},
	})
}

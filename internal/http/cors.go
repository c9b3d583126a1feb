package http

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// createCORSMiddleware creates a CORS middleware for browser front ends served from another origin.
// Returns nil when CORS is disabled or no usable origin is configured.
//
// The local API hands out decrypted documents, so origins must be listed explicitly. A wildcard
// entry is dropped with a warning.
func createCORSMiddleware(enabled bool, allowOriginsStr string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	if allowOriginsStr == "" {
		logger.Warn("CORS enabled but no origins configured - CORS will not be applied")
		return nil
	}

	origins := parseOrigins(allowOriginsStr)
	explicit := origins[:0]
	for _, origin := range origins {
		if origin == "*" {
			logger.Warn("ignoring wildcard CORS origin")
			continue
		}
		explicit = append(explicit, origin)
	}
	if len(explicit) == 0 {
		logger.Warn("CORS enabled but no valid origins found")
		return nil
	}

	logger.Info("CORS enabled",
		slog.Int("origin_count", len(explicit)),
		slog.Any("origins", explicit))

	return cors.New(cors.Config{
		AllowOrigins: explicit,
		AllowMethods: []string{"GET", "POST", "PUT"},
		AllowHeaders: []string{"Content-Type"},
		ExposeHeaders: []string{
			"X-Request-Id",
			"Content-Disposition",
			"Retry-After",
		},
		MaxAge: 12 * time.Hour,
	})
}

// parseOrigins splits a comma-separated origin list and trims whitespace.
func parseOrigins(originsStr string) []string {
	if originsStr == "" {
		return nil
	}

	parts := strings.Split(originsStr, ",")
	origins := make([]string, 0, len(parts))

	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}

	return origins
}

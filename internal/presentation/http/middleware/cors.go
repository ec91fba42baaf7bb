package middleware

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/stockboard-api/internal/config"
)

// Headers the dashboard client must send or read on every request
var (
	requiredRequestHeaders = []string{"Accept", "Origin", "Authorization", "Content-Type", "X-Request-ID", IdempotencyKeyHeader}
	exposedHeaders         = []string{
		"Content-Length",
		"X-Request-ID",
		"X-Idempotency-Replayed",
		"X-RateLimit-Limit",
		"X-RateLimit-Remaining",
		"Retry-After",
	}
)

// CORSMiddleware creates a CORS middleware with the provided configuration
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     withHeaders(cfg.AllowedHeaders, requiredRequestHeaders...),
		ExposeHeaders:    exposedHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	// Local dashboard dev servers
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://127.0.0.1:3000",
		}
	}

	if len(corsConfig.AllowMethods) == 0 {
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}

	return cors.New(corsConfig)
}

// withHeaders appends each of required missing from headers, compared
// case-insensitively.
func withHeaders(headers []string, required ...string) []string {
	out := append([]string(nil), headers...)
	for _, r := range required {
		found := false
		for _, h := range out {
			if strings.EqualFold(h, r) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, r)
		}
	}
	return out
}

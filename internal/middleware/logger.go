// File: internal/middleware/logger.go
package middleware

import (
	"net/http"
	"time"

	"github.com/agrisense/agri-gateway/internal/services"
)

// Logging logs incoming HTTP request & response details.
func Logging(logger services.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			logger.Info("request handled",
				"method", r.Method,
				"path", r.RequestURI,
				"remote", r.RemoteAddr,
				"duration", time.Since(start).String(),
			)
		})
	}
}

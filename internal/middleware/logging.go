package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

// statusRecorder captures the status code written to the client.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs one line per request with method, path, status,
// duration, and client IP. Server errors log at error level, client
// errors at warn.
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sr, r)

			level := slog.LevelInfo
			switch {
			case sr.status >= 500:
				level = slog.LevelError
			case sr.status >= 400:
				level = slog.LevelWarn
			}
			logger.Log(r.Context(), level, "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sr.status,
				"duration", time.Since(start),
				"ip", RealIP(r),
			)
		})
	}
}

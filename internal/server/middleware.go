package server

import (
	"fmt"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/pfrederiksen/bcmc-trips/internal/logger"
	"github.com/rs/cors"
)

// RequestLogger logs each request as one structured line and records
// request metrics. Wire it after chimiddleware.RequestID so the request ID
// is available.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		logger.IncrCounter("http.requests")
		logger.IncrCounter(fmt.Sprintf("http.status.%d", status))
		logger.RecordTiming("http.request", elapsed)

		fields := logger.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      status,
			"bytes":       ww.BytesWritten(),
			"duration_ms": elapsed.Milliseconds(),
			"remote":      r.RemoteAddr,
			"request_id":  chimiddleware.GetReqID(r.Context()),
		}
		if status >= http.StatusInternalServerError {
			logger.Warn("request", fields)
			return
		}
		logger.Info("request", fields)
	})
}

// NewCORSHandler returns a middleware that applies CORS headers for
// allowedOrigins. The service is read-only, so only GET and HEAD are allowed.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         3600,
	})
	return c.Handler
}

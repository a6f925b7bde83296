package router

import (
	"net/http"
	"time"

	"github.com/cyklo2/autoresponder/internal/config"
	"github.com/cyklo2/autoresponder/internal/handler"
	"github.com/cyklo2/autoresponder/internal/middleware"
)

// New creates and configures the HTTP router
func New(h *handler.Handler, mw *middleware.Middleware, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	// Status endpoint
	mux.HandleFunc("GET /{$}", h.Status)

	// Reservation confirmation endpoint (rate limited when enabled)
	sendRateLimit := mw.RateLimit(middleware.RateLimitConfig{
		Limit:  cfg.Security.RateLimiting.Limit,
		Window: rateLimitWindow(cfg.Security.RateLimiting.Window),
		KeyFn:  middleware.IPKey,
	})
	mux.Handle("POST /send-email", sendRateLimit(http.HandlerFunc(h.SendEmail)))

	// Everything else, including wrong methods on known paths, is a 404
	mux.HandleFunc("/send-email", h.NotFound)
	mux.HandleFunc("/", h.NotFound)

	// Apply middleware stack
	var handler http.Handler = mux

	// CORS headers on every response, preflight short-circuit
	handler = mw.CORS(handler)

	// Request logging
	handler = mw.Logger(handler)

	// Request ID
	handler = mw.RequestID(handler)

	// Panic recovery (outermost)
	handler = mw.Recover(handler)

	return handler
}

func rateLimitWindow(window string) time.Duration {
	d, err := time.ParseDuration(window)
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}

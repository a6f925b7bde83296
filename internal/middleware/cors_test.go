package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/cyklo2/autoresponder/internal/config"
	"github.com/cyklo2/autoresponder/internal/logger"
)

func newTestMiddleware() *Middleware {
	return New(nil, &logger.Logger{Logger: zerolog.Nop()}, &config.Config{})
}

func TestCORSAttachesHeaders(t *testing.T) {
	mw := newTestMiddleware()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	mw.CORS(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	// Headers ride along on whatever the inner handler produced
	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestCORSPreflightShortCircuit(t *testing.T) {
	mw := newTestMiddleware()

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	mw.CORS(next).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/send-email", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.False(t, called)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimitDisabledPassesThrough(t *testing.T) {
	mw := newTestMiddleware()

	limited := mw.RateLimit(RateLimitConfig{Limit: 1, KeyFn: IPKey})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Rate limiting disabled and no Redis: every request goes through
	for range 3 {
		rec := httptest.NewRecorder()
		limited(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/send-email", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

package router_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyklo2/autoresponder/internal/config"
	"github.com/cyklo2/autoresponder/internal/email"
	"github.com/cyklo2/autoresponder/internal/handler"
	"github.com/cyklo2/autoresponder/internal/logger"
	"github.com/cyklo2/autoresponder/internal/middleware"
	"github.com/cyklo2/autoresponder/internal/router"
	"github.com/cyklo2/autoresponder/internal/service"
)

func newTestServer(sender email.Sender) http.Handler {
	log := &logger.Logger{Logger: zerolog.Nop()}
	cfg := &config.Config{}
	svc := service.NewConfirmationService(sender, log)
	h := handler.New(log, cfg, svc)
	mw := middleware.New(nil, log, cfg)
	return router.New(h, mw, cfg)
}

func do(srv http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func assertCORSHeaders(t *testing.T, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestOptionsShortCircuits(t *testing.T) {
	srv := newTestServer(email.NewMockSender())

	for _, path := range []string{"/", "/send-email", "/anything"} {
		rec := do(srv, http.MethodOptions, path, "")
		assert.Equal(t, http.StatusNoContent, rec.Code, path)
		assert.Empty(t, rec.Body.String(), path)
		assertCORSHeaders(t, rec)
	}
}

func TestStatusRoute(t *testing.T) {
	srv := newTestServer(email.NewMockSender())

	rec := do(srv, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assertCORSHeaders(t, rec)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body, "message")
	assert.Contains(t, body, "timestamp")
}

func TestSendEmailRoute(t *testing.T) {
	mock := email.NewMockSender()
	srv := newTestServer(mock)

	rec := do(srv, http.MethodPost, "/send-email", `{"date":"2024-06-01","time":"14:30","reservationNumber":"42"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assertCORSHeaders(t, rec)
	assert.Len(t, mock.Sent(), 1)
}

func TestSendEmailRouteDeliveryFailure(t *testing.T) {
	mock := email.NewMockSender()
	mock.Fail(errors.New("boom"))
	srv := newTestServer(mock)

	rec := do(srv, http.MethodPost, "/send-email", `{"date":"d","time":"t","reservationNumber":"n"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assertCORSHeaders(t, rec)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Failed to send email: boom", body["error"])
}

func TestUnknownRoutesReturn404(t *testing.T) {
	srv := newTestServer(email.NewMockSender())

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/unknown"},
		{http.MethodPost, "/"},
		{http.MethodGet, "/send-email"},
		{http.MethodDelete, "/send-email"},
		{http.MethodPut, "/api/v1/reservations"},
	}

	for _, tc := range cases {
		rec := do(srv, tc.method, tc.path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", tc.method, tc.path)
		assertCORSHeaders(t, rec)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Route not found", body["error"])
	}
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(email.NewMockSender())

	rec := do(srv, http.MethodGet, "/", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "test-id-1")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, "test-id-1", rec.Header().Get("X-Request-ID"))
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cyklo2/autoresponder/internal/config"
	"github.com/cyklo2/autoresponder/internal/logger"
	"github.com/cyklo2/autoresponder/internal/service"
)

// Handler holds all HTTP handlers
type Handler struct {
	log        *logger.Logger
	cfg        *config.Config
	confirmSvc *service.ConfirmationService
}

// New creates a new Handler instance
func New(log *logger.Logger, cfg *config.Config, confirmSvc *service.ConfirmationService) *Handler {
	return &Handler{
		log:        log,
		cfg:        cfg,
		confirmSvc: confirmSvc,
	}
}

// NotFound answers any route the router has no handler for.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Route not found")
}

// JSON helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": message,
	})
}

func readJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("request body is empty")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	return decoder.Decode(v)
}

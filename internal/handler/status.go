package handler

import (
	"net/http"
	"time"
)

// StatusResponse represents the status endpoint response
type StatusResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Status handles GET / and reports that the relay is up.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Message:   "Autoresponder Cyklo2 is running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

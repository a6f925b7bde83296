package handler

import (
	"errors"
	"net/http"

	"github.com/cyklo2/autoresponder/internal/service"
)

const invalidPayloadMessage = "Invalid payload. Expected fields: date (string), time (string), reservationNumber (string)."

// SendEmail handles POST /send-email
// Parses the reservation payload, renders the confirmation message and
// forwards it to the email provider.
func (h *Handler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var data any
	if err := readJSON(r, &data); err != nil {
		// Parse failures share the delivery error surface. Callers only see
		// that the email did not go out.
		h.log.Error().Err(err).Msg("failed to parse request body")
		writeError(w, http.StatusInternalServerError, "Failed to send email: "+err.Error())
		return
	}

	msg, err := h.confirmSvc.BuildMessage(data)
	if errors.Is(err, service.ErrInvalidPayload) {
		h.log.Warn().Msg("rejected reservation payload")
		writeError(w, http.StatusBadRequest, invalidPayloadMessage)
		return
	}

	if err := h.confirmSvc.Send(r.Context(), msg); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to send email: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Email sent",
	})
}

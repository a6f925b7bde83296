package service

import (
	"context"
	"errors"

	"github.com/cyklo2/autoresponder/internal/email"
	"github.com/cyklo2/autoresponder/internal/logger"
	"github.com/cyklo2/autoresponder/internal/model"
)

// Confirmation errors
var (
	ErrInvalidPayload = errors.New("invalid reservation payload")
)

// ConfirmationRecipient is the mailbox all confirmation emails go to. The
// recipient is fixed on purpose: the request payload must never be able to
// redirect mail elsewhere.
const ConfirmationRecipient = "rezerwacje@cyklo2.pl"

// ConfirmationService turns reservation payloads into confirmation emails
// and hands them to the configured provider.
type ConfirmationService struct {
	sender email.Sender
	log    *logger.Logger
}

// NewConfirmationService creates a new ConfirmationService.
func NewConfirmationService(sender email.Sender, log *logger.Logger) *ConfirmationService {
	return &ConfirmationService{
		sender: sender,
		log:    log.WithComponent("confirmation"),
	}
}

// ValidatePayload checks an arbitrary decoded JSON value against the
// reservation shape. Valid input is a JSON object whose "date", "time" and
// "reservationNumber" members are all strings; empty strings pass and no
// date or time format is enforced.
func ValidatePayload(data any) (model.ReservationPayload, bool) {
	obj, ok := data.(map[string]any)
	if !ok {
		return model.ReservationPayload{}, false
	}

	date, ok := obj["date"].(string)
	if !ok {
		return model.ReservationPayload{}, false
	}
	timeOfDay, ok := obj["time"].(string)
	if !ok {
		return model.ReservationPayload{}, false
	}
	number, ok := obj["reservationNumber"].(string)
	if !ok {
		return model.ReservationPayload{}, false
	}

	return model.ReservationPayload{
		Date:              date,
		Time:              timeOfDay,
		ReservationNumber: number,
	}, true
}

// BuildMessage validates data and, on success, returns the normalized
// confirmation email. The recipient is always ConfirmationRecipient and the
// subject and body come from the fixed templates; nothing else from the
// input affects the message. Invalid input returns ErrInvalidPayload.
func (s *ConfirmationService) BuildMessage(data any) (email.Message, error) {
	payload, ok := ValidatePayload(data)
	if !ok {
		return email.Message{}, ErrInvalidPayload
	}

	return email.Message{
		To:      ConfirmationRecipient,
		Subject: email.ConfirmationSubject(payload.ReservationNumber),
		Text:    email.ConfirmationText(payload.Date, payload.Time),
	}, nil
}

// Send delivers a built confirmation message through the provider. Failures
// are logged and returned as-is; there are no retries.
func (s *ConfirmationService) Send(ctx context.Context, msg email.Message) error {
	if err := s.sender.Send(ctx, msg); err != nil {
		s.log.Error().Err(err).Str("subject", msg.Subject).Msg("confirmation delivery failed")
		return err
	}

	s.log.Info().Str("subject", msg.Subject).Msg("confirmation sent")
	return nil
}

// Confirm validates data and sends the resulting confirmation email in one
// step. Callers distinguish outcomes with errors.Is(err, ErrInvalidPayload).
func (s *ConfirmationService) Confirm(ctx context.Context, data any) error {
	msg, err := s.BuildMessage(data)
	if err != nil {
		return err
	}
	return s.Send(ctx, msg)
}

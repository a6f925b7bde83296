package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyklo2/autoresponder/internal/email"
	"github.com/cyklo2/autoresponder/internal/logger"
)

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: zerolog.Nop()}
}

func decode(t *testing.T, raw string) any {
	t.Helper()
	var data any
	require.NoError(t, json.Unmarshal([]byte(raw), &data))
	return data
}

func TestValidatePayloadAccepts(t *testing.T) {
	for name, raw := range map[string]string{
		"plain":         `{"date":"2024-06-01","time":"14:30","reservationNumber":"42"}`,
		"empty strings": `{"date":"","time":"","reservationNumber":""}`,
		"special chars": `{"date":"pon. 1 czerwca","time":"14:30 – 15:00","reservationNumber":"A/2024-17"}`,
		"extra fields":  `{"date":"d","time":"t","reservationNumber":"n","guests":4}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, ok := ValidatePayload(decode(t, raw))
			assert.True(t, ok)
		})
	}
}

func TestValidatePayloadRejects(t *testing.T) {
	for name, raw := range map[string]string{
		"missing date":       `{"time":"14:30","reservationNumber":"42"}`,
		"missing time":       `{"date":"2024-06-01","reservationNumber":"42"}`,
		"missing number":     `{"date":"2024-06-01","time":"14:30"}`,
		"date not a string":  `{"date":20240601,"time":"14:30","reservationNumber":"42"}`,
		"time not a string":  `{"date":"2024-06-01","time":null,"reservationNumber":"42"}`,
		"number is an array": `{"date":"2024-06-01","time":"14:30","reservationNumber":["42"]}`,
		"null body":          `null`,
		"array body":         `[]`,
		"string body":        `"hello"`,
		"number body":        `7`,
	} {
		t.Run(name, func(t *testing.T) {
			_, ok := ValidatePayload(decode(t, raw))
			assert.False(t, ok)
		})
	}
}

func TestBuildMessageNormalizes(t *testing.T) {
	svc := NewConfirmationService(email.NewMockSender(), testLogger())

	msg, err := svc.BuildMessage(decode(t, `{"date":"2024-06-01","time":"14:30","reservationNumber":"42"}`))
	require.NoError(t, err)

	assert.Equal(t, ConfirmationRecipient, msg.To)
	assert.Equal(t, "Rezerwacja nr 42", msg.Subject)
	assert.Equal(t, email.ConfirmationText("2024-06-01", "14:30"), msg.Text)
	assert.Empty(t, msg.HTML)
}

func TestBuildMessageRecipientIgnoresInput(t *testing.T) {
	svc := NewConfirmationService(email.NewMockSender(), testLogger())

	// A "to" member in the payload must not leak into the message
	msg, err := svc.BuildMessage(decode(t, `{"date":"d","time":"t","reservationNumber":"n","to":"attacker@example.com"}`))
	require.NoError(t, err)
	assert.Equal(t, ConfirmationRecipient, msg.To)
}

func TestBuildMessageInvalidPayload(t *testing.T) {
	svc := NewConfirmationService(email.NewMockSender(), testLogger())

	_, err := svc.BuildMessage(decode(t, `{"date":"2024-06-01"}`))
	require.ErrorIs(t, err, ErrInvalidPayload)
}

func TestConfirmSendsThroughProvider(t *testing.T) {
	mock := email.NewMockSender()
	svc := NewConfirmationService(mock, testLogger())

	err := svc.Confirm(context.Background(), decode(t, `{"date":"2024-06-01","time":"14:30","reservationNumber":"42"}`))
	require.NoError(t, err)

	sent := mock.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, ConfirmationRecipient, sent[0].To)
	assert.Equal(t, "Rezerwacja nr 42", sent[0].Subject)
}

func TestConfirmPropagatesDeliveryFailure(t *testing.T) {
	mock := email.NewMockSender()
	mock.Fail(errors.New("boom"))
	svc := NewConfirmationService(mock, testLogger())

	err := svc.Confirm(context.Background(), decode(t, `{"date":"d","time":"t","reservationNumber":"n"}`))
	require.EqualError(t, err, "boom")
}

func TestConfirmDoesNotSendInvalidPayload(t *testing.T) {
	mock := email.NewMockSender()
	svc := NewConfirmationService(mock, testLogger())

	err := svc.Confirm(context.Background(), decode(t, `{"time":"14:30"}`))
	require.ErrorIs(t, err, ErrInvalidPayload)
	assert.Empty(t, mock.Sent())
}

package email

import "strings"

// ConfirmationSubject returns the subject line for a reservation
// confirmation email.
func ConfirmationSubject(reservationNumber string) string {
	return "Rezerwacja nr " + reservationNumber
}

// ConfirmationText returns the plain-text body for a reservation
// confirmation email. The date and time are interpolated verbatim; the
// surrounding text is fixed.
func ConfirmationText(date, time string) string {
	return strings.Join([]string{
		"Dzień dobry,",
		"",
		"Rezerwacja o dacie " + date + " i godzinie " + time + " została potwierdzona.",
		"",
		"Autoresponder Cyklo2",
	}, "\n")
}

package model

// ReservationPayload identifies a booking by date, time and reservation
// number. It is decoded from untrusted request input; none of the fields
// carry format guarantees beyond being strings.
type ReservationPayload struct {
	Date              string `json:"date"`
	Time              string `json:"time"`
	ReservationNumber string `json:"reservationNumber"`
}

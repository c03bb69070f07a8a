package events

import (
	"encoding/json"
	"fmt"
)

// Routing keys published on the venue topic exchange.
const (
	RKBookingCreated = "booking.created"
	RKPaymentPaid    = "payment.paid"
	RKPaymentFailed  = "payment.failed"
	RKPaymentExpired = "payment.expired"
)

type BookingCreated struct {
	BookingID   string `json:"booking_id"`
	UserID      string `json:"user_id"`
	CourtID     string `json:"court_id"`
	BookingDate string `json:"booking_date"`
	TimeSlot    string `json:"time_slot"`
	Amount      int64  `json:"amount"`
}

// PaymentResult carries a settled webhook outcome for a booking.
type PaymentResult struct {
	BookingID     string `json:"booking_id"`
	InvoiceNumber string `json:"invoice_number"`
	Status        string `json:"status"`
	Amount        int64  `json:"amount"`
}

func Unmarshal[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}

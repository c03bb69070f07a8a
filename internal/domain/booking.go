package domain

import (
	"errors"
	"time"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrSlotTaken       = errors.New("slot already booked")
	ErrCourtFull       = errors.New("court has no remaining slots for that day")
)

// PaymentStatus follows the booking payment lifecycle:
// pending -> waiting_payment -> paid | failed | expired.
type PaymentStatus string

const (
	StatusPending        PaymentStatus = "pending"
	StatusWaitingPayment PaymentStatus = "waiting_payment"
	StatusPaid           PaymentStatus = "paid"
	StatusFailed         PaymentStatus = "failed"
	StatusExpired        PaymentStatus = "expired"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusWaitingPayment, StatusPaid, StatusFailed, StatusExpired:
		return true
	}
	return false
}

// IsTerminal reports whether no further gateway-driven transition may
// leave s. Manual admin overrides are the only exception.
func (s PaymentStatus) IsTerminal() bool {
	switch s {
	case StatusPaid, StatusFailed, StatusExpired:
		return true
	}
	return false
}

func TerminalStatuses() []PaymentStatus {
	return []PaymentStatus{StatusPaid, StatusFailed, StatusExpired}
}

// StatusFromTransaction maps a DOKU transaction status onto the booking
// lifecycle. Unknown values map to pending, never to paid.
func StatusFromTransaction(tx string) PaymentStatus {
	switch tx {
	case "SUCCESS":
		return StatusPaid
	case "FAILED":
		return StatusFailed
	case "EXPIRED":
		return StatusExpired
	default:
		return StatusPending
	}
}

type Booking struct {
	ID            string        `gorm:"primaryKey" json:"id"`
	UserID        string        `gorm:"index" json:"user_id"`
	CourtID       string        `gorm:"index" json:"court_id"`
	BookingDate   string        `gorm:"index" json:"booking_date"` // YYYY-MM-DD
	TimeSlot      string        `json:"time_slot"`                 // slot start, HH:MM
	Amount        int64         `json:"amount"`                    // IDR, no decimals
	PaymentStatus PaymentStatus `gorm:"index" json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/usausernob/lapangan-putroagung-rangkah/internal/doku"
	"github.com/usausernob/lapangan-putroagung-rangkah/internal/domain"
	"github.com/usausernob/lapangan-putroagung-rangkah/internal/events"
)

// BookingStore is the persistence contract the payment flows need. The
// store owns per-row atomicity; services never hold locks of their own.
type BookingStore interface {
	Create(ctx context.Context, b *domain.Booking) error
	ByID(ctx context.Context, id string) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, to domain.PaymentStatus) (*domain.Booking, error)
	UpdateStatusIfNotTerminal(ctx context.Context, id string, to domain.PaymentStatus) (*domain.Booking, bool, error)
}

type CheckoutGateway interface {
	CreatePayment(ctx context.Context, req doku.CheckoutRequest) (*doku.CheckoutResponse, error)
}

type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// Identity is an already-verified caller; raw credentials never reach
// this layer.
type Identity struct {
	ID    string
	Name  string
	Email string
}

type InitiateInput struct {
	BookingID   string // set on the retry path only
	CourtID     string
	BookingDate string // YYYY-MM-DD
	TimeSlot    string // HH:MM
	Amount      int64  // IDR
}

type InitiateResult struct {
	PaymentURL    string `json:"payment_url"`
	InvoiceNumber string `json:"invoice_number"`
}

type PaymentSvc struct {
	bookings     BookingStore
	gateway      CheckoutGateway
	pub          Publisher
	callbackBase string
}

func NewPaymentSvc(bookings BookingStore, gateway CheckoutGateway, pub Publisher, callbackBase string) *PaymentSvc {
	return &PaymentSvc{bookings: bookings, gateway: gateway, pub: pub, callbackBase: callbackBase}
}

// Initiate turns a committed slot selection into a persisted booking plus
// a checkout redirect. The booking row is written before the gateway call
// and is kept in pending when anything after it fails, so the customer can
// retry payment without re-selecting the slot.
func (s *PaymentSvc) Initiate(ctx context.Context, in InitiateInput, who Identity) (*InitiateResult, error) {
	if who.ID == "" {
		return nil, ErrUnauthorized
	}

	b, err := s.resolveBooking(ctx, in, who)
	if err != nil {
		return nil, err
	}

	req := doku.CheckoutRequest{
		Order: doku.Order{
			Amount:        b.Amount,
			InvoiceNumber: b.ID,
			CallbackURL:   fmt.Sprintf("%s/dashboard?payment=success&booking=%s", s.callbackBase, b.ID),
		},
		Payment: doku.Payment{PaymentDueDate: doku.PaymentDueMinutes},
		Customer: doku.Customer{
			ID:    who.ID,
			Name:  customerName(who),
			Email: who.Email,
		},
	}

	res, err := s.gateway.CreatePayment(ctx, req)
	if err != nil {
		logrus.WithError(err).WithField("booking_id", b.ID).Warn("checkout session creation failed")
		return nil, err
	}
	paymentURL := res.PaymentURL()
	if paymentURL == "" {
		return nil, fmt.Errorf("doku response carries no payment url for booking %s", b.ID)
	}

	if _, err := s.bookings.UpdateStatus(ctx, b.ID, domain.StatusWaitingPayment); err != nil {
		return nil, fmt.Errorf("update booking %s: %w", b.ID, err)
	}

	return &InitiateResult{PaymentURL: paymentURL, InvoiceNumber: b.ID}, nil
}

// resolveBooking inserts a fresh pending booking, or reloads the one the
// caller is retrying payment for. On the retry path the stored amount is
// authoritative; the caller cannot change the price of an existing booking.
func (s *PaymentSvc) resolveBooking(ctx context.Context, in InitiateInput, who Identity) (*domain.Booking, error) {
	if in.BookingID != "" {
		existing, err := s.bookings.ByID(ctx, in.BookingID)
		if err != nil {
			if errors.Is(err, domain.ErrBookingNotFound) {
				return nil, fmt.Errorf("%w: booking %s not found", ErrInvalidRequest, in.BookingID)
			}
			return nil, fmt.Errorf("load booking %s: %w", in.BookingID, err)
		}
		if existing.UserID != who.ID {
			return nil, ErrUnauthorized
		}
		if existing.PaymentStatus.IsTerminal() {
			return nil, fmt.Errorf("%w: booking %s is already %s", ErrInvalidRequest, existing.ID, existing.PaymentStatus)
		}
		return existing, nil
	}

	if in.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount is required", ErrInvalidRequest)
	}
	if in.CourtID == "" || in.BookingDate == "" || in.TimeSlot == "" {
		return nil, fmt.Errorf("%w: court, date and time slot are required", ErrInvalidRequest)
	}
	if !domain.ValidTimeSlot(in.TimeSlot) {
		return nil, fmt.Errorf("%w: %q is not a bookable slot", ErrInvalidRequest, in.TimeSlot)
	}

	b := &domain.Booking{
		UserID:        who.ID,
		CourtID:       in.CourtID,
		BookingDate:   in.BookingDate,
		TimeSlot:      in.TimeSlot,
		Amount:        in.Amount,
		PaymentStatus: domain.StatusPending,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	if s.pub != nil {
		_ = s.pub.PublishJSON(ctx, events.RKBookingCreated, events.BookingCreated{
			BookingID:   b.ID,
			UserID:      b.UserID,
			CourtID:     b.CourtID,
			BookingDate: b.BookingDate,
			TimeSlot:    b.TimeSlot,
			Amount:      b.Amount,
		})
	}
	return b, nil
}

func customerName(who Identity) string {
	if who.Name != "" {
		return who.Name
	}
	if who.Email != "" {
		return who.Email
	}
	return "Customer"
}

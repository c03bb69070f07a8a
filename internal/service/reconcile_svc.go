package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/usausernob/lapangan-putroagung-rangkah/internal/domain"
	"github.com/usausernob/lapangan-putroagung-rangkah/internal/events"
)

// Notification is the gateway-defined webhook payload. Only the invoice
// number and transaction status matter here.
type Notification struct {
	Order struct {
		InvoiceNumber string `json:"invoice_number"`
		Amount        int64  `json:"amount"`
	} `json:"order"`
	Transaction struct {
		Status string `json:"status"`
		Date   string `json:"date"`
	} `json:"transaction"`
}

// ReconcileSvc is the sole authority translating gateway settlement
// outcomes into terminal booking status.
type ReconcileSvc struct {
	bookings      BookingStore
	pub           Publisher
	guardTerminal bool
}

// NewReconcileSvc builds the webhook reconciler. With guardTerminal set,
// a notification arriving after the booking already settled becomes a
// no-op instead of overwriting the terminal status; unset reproduces the
// blind overwrite of the original system.
func NewReconcileSvc(bookings BookingStore, pub Publisher, guardTerminal bool) *ReconcileSvc {
	return &ReconcileSvc{bookings: bookings, pub: pub, guardTerminal: guardTerminal}
}

// Handle applies one gateway notification. A missing invoice number is
// rejected without touching the store; store errors propagate so the
// gateway's own retry mechanism resends the notification.
func (s *ReconcileSvc) Handle(ctx context.Context, n Notification) (domain.PaymentStatus, error) {
	if n.Order.InvoiceNumber == "" {
		return "", ErrMalformedNotification
	}

	to := domain.StatusFromTransaction(n.Transaction.Status)

	var (
		b       *domain.Booking
		applied bool
		err     error
	)
	if s.guardTerminal {
		b, applied, err = s.bookings.UpdateStatusIfNotTerminal(ctx, n.Order.InvoiceNumber, to)
	} else {
		b, err = s.bookings.UpdateStatus(ctx, n.Order.InvoiceNumber, to)
		applied = err == nil
	}
	if err != nil {
		return "", fmt.Errorf("update booking %s: %w", n.Order.InvoiceNumber, err)
	}

	logrus.WithFields(logrus.Fields{
		"invoice_number": n.Order.InvoiceNumber,
		"tx_status":      n.Transaction.Status,
		"payment_status": to,
		"applied":        applied,
	}).Info("webhook notification reconciled")

	if applied && to.IsTerminal() {
		s.publishResult(ctx, b, to)
	}
	return to, nil
}

func (s *ReconcileSvc) publishResult(ctx context.Context, b *domain.Booking, to domain.PaymentStatus) {
	if s.pub == nil {
		return
	}
	var key string
	switch to {
	case domain.StatusPaid:
		key = events.RKPaymentPaid
	case domain.StatusFailed:
		key = events.RKPaymentFailed
	case domain.StatusExpired:
		key = events.RKPaymentExpired
	default:
		return
	}
	_ = s.pub.PublishJSON(ctx, key, events.PaymentResult{
		BookingID:     b.ID,
		InvoiceNumber: b.ID,
		Status:        string(to),
		Amount:        b.Amount,
	})
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usausernob/lapangan-putroagung-rangkah/internal/domain"
	"github.com/usausernob/lapangan-putroagung-rangkah/internal/events"
)

func notification(invoice, txStatus string) Notification {
	var n Notification
	n.Order.InvoiceNumber = invoice
	n.Order.Amount = domain.PricePerSlot
	n.Transaction.Status = txStatus
	n.Transaction.Date = "2026-09-10T08:15:00Z"
	return n
}

func storeWithBooking(status domain.PaymentStatus) *fakeStore {
	store := newFakeStore()
	store.put(domain.Booking{
		ID: "bk-1", UserID: "user-1", CourtID: "court-soccer",
		BookingDate: "2026-09-10", TimeSlot: "09:00",
		Amount: domain.PricePerSlot, PaymentStatus: status,
	})
	return store
}

func TestHandleMapsTransactionStatus(t *testing.T) {
	cases := []struct {
		tx   string
		want domain.PaymentStatus
	}{
		{"SUCCESS", domain.StatusPaid},
		{"FAILED", domain.StatusFailed},
		{"EXPIRED", domain.StatusExpired},
		{"PENDING", domain.StatusPending},
		{"REFUNDED", domain.StatusPending}, // unknown statuses never settle a booking
		{"success", domain.StatusPending},  // status matching is case-sensitive
	}
	for _, tc := range cases {
		t.Run(tc.tx, func(t *testing.T) {
			store := storeWithBooking(domain.StatusWaitingPayment)
			svc := NewReconcileSvc(store, nil, true)

			got, err := svc.Handle(context.Background(), notification("bk-1", tc.tx))
			require.NoError(t, err)

			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.want, store.get("bk-1").PaymentStatus)
		})
	}
}

func TestHandleRejectsMissingInvoiceWithoutStoreWrite(t *testing.T) {
	store := storeWithBooking(domain.StatusWaitingPayment)
	svc := NewReconcileSvc(store, nil, true)

	_, err := svc.Handle(context.Background(), notification("", "SUCCESS"))

	assert.ErrorIs(t, err, ErrMalformedNotification)
	assert.Empty(t, store.calls)
	assert.Equal(t, domain.StatusWaitingPayment, store.get("bk-1").PaymentStatus)
}

func TestHandleUnknownInvoicePropagatesNotFound(t *testing.T) {
	store := newFakeStore()
	svc := NewReconcileSvc(store, nil, true)

	_, err := svc.Handle(context.Background(), notification("no-such-booking", "SUCCESS"))

	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestHandleGuardedKeepsSettledBooking(t *testing.T) {
	store := storeWithBooking(domain.StatusPaid)
	pub := &fakePublisher{}
	svc := NewReconcileSvc(store, pub, true)

	// a late EXPIRED notification for an already paid booking
	got, err := svc.Handle(context.Background(), notification("bk-1", "EXPIRED"))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusExpired, got)
	assert.Equal(t, domain.StatusPaid, store.get("bk-1").PaymentStatus)
	assert.Empty(t, pub.keys, "no settlement event for a skipped update")
}

func TestHandleUnguardedOverwritesSettledBooking(t *testing.T) {
	store := storeWithBooking(domain.StatusPaid)
	svc := NewReconcileSvc(store, nil, false)

	_, err := svc.Handle(context.Background(), notification("bk-1", "EXPIRED"))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusExpired, store.get("bk-1").PaymentStatus)
}

func TestHandleIsIdempotentUnderGuard(t *testing.T) {
	store := storeWithBooking(domain.StatusWaitingPayment)
	pub := &fakePublisher{}
	svc := NewReconcileSvc(store, pub, true)

	for i := 0; i < 3; i++ {
		_, err := svc.Handle(context.Background(), notification("bk-1", "SUCCESS"))
		require.NoError(t, err)
	}

	assert.Equal(t, domain.StatusPaid, store.get("bk-1").PaymentStatus)
	assert.Equal(t, []string{events.RKPaymentPaid}, pub.keys, "duplicates publish nothing")
}

func TestHandlePublishesSettlementEvents(t *testing.T) {
	cases := []struct {
		tx  string
		key string
	}{
		{"SUCCESS", events.RKPaymentPaid},
		{"FAILED", events.RKPaymentFailed},
		{"EXPIRED", events.RKPaymentExpired},
	}
	for _, tc := range cases {
		t.Run(tc.tx, func(t *testing.T) {
			store := storeWithBooking(domain.StatusWaitingPayment)
			pub := &fakePublisher{}
			svc := NewReconcileSvc(store, pub, true)

			_, err := svc.Handle(context.Background(), notification("bk-1", tc.tx))
			require.NoError(t, err)

			require.Equal(t, []string{tc.key}, pub.keys)
			ev, ok := pub.payloads[0].(events.PaymentResult)
			require.True(t, ok)
			assert.Equal(t, "bk-1", ev.BookingID)
			assert.Equal(t, int64(domain.PricePerSlot), ev.Amount)
		})
	}
}

func TestHandleDoesNotPublishForPendingOutcome(t *testing.T) {
	store := storeWithBooking(domain.StatusWaitingPayment)
	pub := &fakePublisher{}
	svc := NewReconcileSvc(store, pub, true)

	_, err := svc.Handle(context.Background(), notification("bk-1", "PENDING"))
	require.NoError(t, err)

	assert.Empty(t, pub.keys)
}

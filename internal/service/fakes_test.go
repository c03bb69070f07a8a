package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/usausernob/lapangan-putroagung-rangkah/internal/doku"
	"github.com/usausernob/lapangan-putroagung-rangkah/internal/domain"
)

// fakeStore is an in-memory BookingBrowser in the style of a hand-rolled
// gateway mock: mutex-guarded, recording every call.
type fakeStore struct {
	mu       sync.Mutex
	seq      int
	bookings map[string]*domain.Booking
	calls    []string

	failCreate error
	failUpdate error
}

func newFakeStore() *fakeStore {
	return &fakeStore{bookings: map[string]*domain.Booking{}}
}

func (f *fakeStore) record(call string) {
	f.calls = append(f.calls, call)
}

func (f *fakeStore) Create(_ context.Context, b *domain.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("create")
	if f.failCreate != nil {
		return f.failCreate
	}
	if b.ID == "" {
		f.seq++
		b.ID = fmt.Sprintf("bk-%d", f.seq)
	}
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeStore) ByID(_ context.Context, id string) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("by_id")
	b, ok := f.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, id string, to domain.PaymentStatus) (*domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("update_status")
	if f.failUpdate != nil {
		return nil, f.failUpdate
	}
	b, ok := f.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	b.PaymentStatus = to
	cp := *b
	return &cp, nil
}

func (f *fakeStore) UpdateStatusIfNotTerminal(_ context.Context, id string, to domain.PaymentStatus) (*domain.Booking, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("update_status_guarded")
	if f.failUpdate != nil {
		return nil, false, f.failUpdate
	}
	b, ok := f.bookings[id]
	if !ok {
		return nil, false, domain.ErrBookingNotFound
	}
	if b.PaymentStatus.IsTerminal() {
		cp := *b
		return &cp, false, nil
	}
	b.PaymentStatus = to
	cp := *b
	return &cp, true, nil
}

func (f *fakeStore) ListByUser(_ context.Context, userID string) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeStore) List(_ context.Context, _, _ int32, courtID, date string) ([]domain.Booking, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Booking
	for _, b := range f.bookings {
		if courtID != "" && b.CourtID != courtID {
			continue
		}
		if date != "" && b.BookingDate != date {
			continue
		}
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func (f *fakeStore) BookedSlots(_ context.Context, date string) (map[string][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string][]string)
	for _, b := range f.bookings {
		if b.BookingDate != date {
			continue
		}
		if b.PaymentStatus == domain.StatusFailed || b.PaymentStatus == domain.StatusExpired {
			continue
		}
		out[b.CourtID] = append(out[b.CourtID], b.TimeSlot)
	}
	return out, nil
}

func (f *fakeStore) get(id string) *domain.Booking {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil
	}
	cp := *b
	return &cp
}

func (f *fakeStore) put(b domain.Booking) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings[b.ID] = &b
}

// fakeGateway records checkout calls and answers through fn.
type fakeGateway struct {
	mu       sync.Mutex
	requests []doku.CheckoutRequest
	fn       func(req doku.CheckoutRequest) (*doku.CheckoutResponse, error)

	// snapshot hook taken at call time, used to assert ordering against
	// the store without relying on call logs alone
	onCall func()
}

func (f *fakeGateway) CreatePayment(_ context.Context, req doku.CheckoutRequest) (*doku.CheckoutResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	onCall := f.onCall
	fn := f.fn
	f.mu.Unlock()
	if onCall != nil {
		onCall()
	}
	if fn == nil {
		return checkoutResponse("https://sandbox.doku.com/checkout/link/ok"), nil
	}
	return fn(req)
}

func checkoutResponse(url string) *doku.CheckoutResponse {
	var res doku.CheckoutResponse
	res.Response.Payment.URL = url
	return &res
}

// fakePublisher records published routing keys and payloads.
type fakePublisher struct {
	mu       sync.Mutex
	keys     []string
	payloads []any
}

func (f *fakePublisher) PublishJSON(_ context.Context, key string, v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = append(f.keys, key)
	f.payloads = append(f.payloads, v)
	return nil
}

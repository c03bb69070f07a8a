package service

import (
	"context"
	"fmt"

	"github.com/usausernob/lapangan-putroagung-rangkah/internal/domain"
)

// BookingBrowser extends BookingStore with the read paths the booking
// pages need.
type BookingBrowser interface {
	BookingStore
	ListByUser(ctx context.Context, userID string) ([]domain.Booking, error)
	List(ctx context.Context, page, size int32, courtID, date string) ([]domain.Booking, int64, error)
	BookedSlots(ctx context.Context, date string) (map[string][]string, error)
}

type BookingSvc struct {
	repo BookingBrowser
}

func NewBookingSvc(repo BookingBrowser) *BookingSvc {
	return &BookingSvc{repo: repo}
}

func (s *BookingSvc) Get(ctx context.Context, id string, who Identity, admin bool) (*domain.Booking, error) {
	b, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !admin && b.UserID != who.ID {
		return nil, ErrUnauthorized
	}
	return b, nil
}

func (s *BookingSvc) ListMine(ctx context.Context, who Identity) ([]domain.Booking, error) {
	return s.repo.ListByUser(ctx, who.ID)
}

func (s *BookingSvc) List(ctx context.Context, page, size int32, courtID, date string) ([]domain.Booking, int64, error) {
	return s.repo.List(ctx, page, size, courtID, date)
}

// CourtAvailability describes one court's bookable slots on a date.
type CourtAvailability struct {
	CourtID   string   `json:"court_id"`
	Booked    []string `json:"booked"`
	Remaining int      `json:"remaining"`
}

// Availability reports booked slots and remaining capacity per court.
// A court with MaxDailyBookings active bookings sells no further slots
// that day regardless of how many slot starts remain.
func (s *BookingSvc) Availability(ctx context.Context, date string, courts []domain.Court) ([]CourtAvailability, error) {
	booked, err := s.repo.BookedSlots(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load booked slots: %w", err)
	}
	out := make([]CourtAvailability, 0, len(courts))
	for _, c := range courts {
		taken := booked[c.ID]
		remaining := domain.SlotCount - len(taken)
		if len(taken) >= domain.MaxDailyBookings {
			remaining = 0
		}
		if remaining < 0 {
			remaining = 0
		}
		if taken == nil {
			taken = []string{}
		}
		out = append(out, CourtAvailability{CourtID: c.ID, Booked: taken, Remaining: remaining})
	}
	return out, nil
}

// OverrideStatus is the manual admin path. It is the only writer allowed
// to move a booking out of a terminal status.
func (s *BookingSvc) OverrideStatus(ctx context.Context, id string, to domain.PaymentStatus) (*domain.Booking, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidRequest, to)
	}
	return s.repo.UpdateStatus(ctx, id, to)
}

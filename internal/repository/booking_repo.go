package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/usausernob/lapangan-putroagung-rangkah/internal/domain"
)

type BookingRepo struct{ db *gorm.DB }

func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Booking{})
}

// Create inserts the booking inside a transaction that locks competing
// rows, so the same court/date/slot cannot be sold twice and the
// three-bookings-per-court-per-day cap holds under races. Bookings whose
// payment failed or expired do not block the slot.
func (r *BookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing domain.Booking
		err := tx.Model(&domain.Booking{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("court_id = ? AND booking_date = ? AND time_slot = ?", b.CourtID, b.BookingDate, b.TimeSlot).
			Where("payment_status NOT IN ?", []domain.PaymentStatus{domain.StatusFailed, domain.StatusExpired}).
			Take(&existing).Error
		if err == nil {
			return domain.ErrSlotTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var active int64
		err = tx.Model(&domain.Booking{}).
			Where("court_id = ? AND booking_date = ?", b.CourtID, b.BookingDate).
			Where("payment_status NOT IN ?", []domain.PaymentStatus{domain.StatusFailed, domain.StatusExpired}).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active >= domain.MaxDailyBookings {
			return domain.ErrCourtFull
		}

		if b.ID == "" {
			b.ID = uuid.NewString()
		}
		return tx.Create(b).Error
	})
}

func (r *BookingRepo) ByID(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

// UpdateStatus overwrites the payment status unconditionally. Used by the
// orchestrator's pending -> waiting_payment step and by admin overrides.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id string, to domain.PaymentStatus) (*domain.Booking, error) {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ?", id).
		Update("payment_status", to)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrBookingNotFound
	}
	return r.ByID(ctx, id)
}

// UpdateStatusIfNotTerminal applies the status only when the stored one
// is not terminal yet. The returned bool reports whether a row changed;
// a booking already settled comes back unchanged with false.
func (r *BookingRepo) UpdateStatusIfNotTerminal(ctx context.Context, id string, to domain.PaymentStatus) (*domain.Booking, bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.Booking{}).
		Where("id = ? AND payment_status NOT IN ?", id, domain.TerminalStatuses()).
		Update("payment_status", to)
	if res.Error != nil {
		return nil, false, res.Error
	}
	b, err := r.ByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return b, res.RowsAffected > 0, nil
}

func (r *BookingRepo) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("booking_date DESC, time_slot DESC").
		Find(&out).Error
	return out, err
}

func (r *BookingRepo) List(ctx context.Context, page, size int32, courtID, date string) ([]domain.Booking, int64, error) {
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}
	qb := r.db.WithContext(ctx).Model(&domain.Booking{})
	if courtID != "" {
		qb = qb.Where("court_id = ?", courtID)
	}
	if date != "" {
		qb = qb.Where("booking_date = ?", date)
	}
	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.Booking
	if err := qb.Order("booking_date DESC, time_slot ASC").Limit(int(size)).Offset(int(page * size)).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// BookedSlots maps court id to the slots taken on date, skipping bookings
// whose payment failed or expired.
func (r *BookingRepo) BookedSlots(ctx context.Context, date string) (map[string][]string, error) {
	var rows []domain.Booking
	err := r.db.WithContext(ctx).
		Select("court_id", "time_slot").
		Where("booking_date = ?", date).
		Where("payment_status NOT IN ?", []domain.PaymentStatus{domain.StatusFailed, domain.StatusExpired}).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string][]string)
	for _, b := range rows {
		out[b.CourtID] = append(out[b.CourtID], b.TimeSlot)
	}
	return out, nil
}

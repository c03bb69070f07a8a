package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/usausernob/lapangan-putroagung-rangkah/internal/domain"
)

type CourtRepo struct{ db *gorm.DB }

func NewCourtRepo(db *gorm.DB) *CourtRepo {
	return &CourtRepo{db: db}
}

func (r *CourtRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Court{})
}

// Seed upserts the venue catalog. Idempotent across restarts.
func (r *CourtRepo) Seed(ctx context.Context, courts []domain.Court) error {
	if len(courts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(&courts).Error
}

func (r *CourtRepo) List(ctx context.Context) ([]domain.Court, error) {
	var out []domain.Court
	err := r.db.WithContext(ctx).Order("id").Find(&out).Error
	return out, err
}

func (r *CourtRepo) ByID(ctx context.Context, id string) (*domain.Court, error) {
	var c domain.Court
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

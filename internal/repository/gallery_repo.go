package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/usausernob/lapangan-putroagung-rangkah/internal/domain"
)

type GalleryRepo struct{ db *gorm.DB }

func NewGalleryRepo(db *gorm.DB) *GalleryRepo {
	return &GalleryRepo{db: db}
}

func (r *GalleryRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.GalleryImage{})
}

func (r *GalleryRepo) Create(ctx context.Context, img *domain.GalleryImage) error {
	if img.ID == "" {
		img.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *GalleryRepo) List(ctx context.Context) ([]domain.GalleryImage, error) {
	var out []domain.GalleryImage
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *GalleryRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.GalleryImage{}, "id = ?", id).Error
}

package domain

import "time"

type GalleryImage struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
}

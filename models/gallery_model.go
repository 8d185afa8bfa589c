package models

import (
	"time"

	"github.com/google/uuid"
)

type Gallery struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Slug          string     `gorm:"size:255;not null;unique" json:"slug"`
	Description   *string    `gorm:"type:text" json:"description,omitempty"`
	MediaType     string     `gorm:"size:10;not null;default:'image'" json:"media_type"`
	MediaURL      string     `gorm:"type:text;not null" json:"media_url"`
	MediaPublicID *string    `gorm:"size:255" json:"-"`
	ThumbnailURL  *string    `gorm:"type:text" json:"thumbnail_url,omitempty"`
	Category      *string    `gorm:"size:100" json:"category,omitempty"`
	State         *string    `gorm:"size:100" json:"state,omitempty"`
	Status        string     `gorm:"size:20;not null;default:'draft'" json:"status"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type Resource struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	URL         string     `gorm:"type:text;not null" json:"url"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	Category    *string    `gorm:"size:100" json:"category,omitempty"`
	Status      string     `gorm:"size:20;not null;default:'draft'" json:"status"`
	PublishedAt *time.Time `json:"published_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

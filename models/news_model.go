package models

import (
	"time"

	"github.com/google/uuid"
)

type NewsArticle struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Slug         string     `gorm:"size:255;not null;unique" json:"slug"`
	Excerpt      *string    `gorm:"type:text" json:"excerpt,omitempty"`
	Content      string     `gorm:"type:text;not null" json:"content"`
	CoverImage   *string    `gorm:"type:text" json:"cover_image,omitempty"`
	CoverImageID *string    `gorm:"size:255" json:"-"`
	Category     *string    `gorm:"size:100" json:"category,omitempty"`
	State        *string    `gorm:"size:100" json:"state,omitempty"`
	Language     string     `gorm:"size:2;not null;default:'en'" json:"language"`
	Status       string     `gorm:"size:20;not null;default:'draft'" json:"status"`
	AuthorID     uuid.UUID  `gorm:"type:uuid;not null" json:"author_id"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`

	Author User `gorm:"foreignkey:AuthorID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

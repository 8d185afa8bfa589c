package models

import (
	"time"

	"github.com/google/uuid"
)

// Pedagogy is a downloadable teaching resource, usually a hosted PDF.
type Pedagogy struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Slug         string     `gorm:"size:255;not null;unique" json:"slug"`
	Description  *string    `gorm:"type:text" json:"description,omitempty"`
	Level        *string    `gorm:"size:20" json:"level,omitempty"`
	SkillType    *string    `gorm:"size:50" json:"skill_type,omitempty"`
	Theme        *string    `gorm:"size:255" json:"theme,omitempty"`
	Content      *string    `gorm:"type:text" json:"content,omitempty"`
	URL          *string    `gorm:"type:text" json:"url,omitempty"`
	PDFViewURL   *string    `gorm:"column:pdf_view_url;type:text" json:"pdf_view_url,omitempty"`
	PDFPublicID  *string    `gorm:"column:pdf_public_id;size:255" json:"-"`
	Downloadable bool       `gorm:"default:true" json:"downloadable"`
	Status       string     `gorm:"size:20;not null;default:'draft'" json:"status"`
	PublishedAt  *time.Time `json:"published_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type Podcast struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Slug          string     `gorm:"size:255;not null;unique" json:"slug"`
	Description   *string    `gorm:"type:text" json:"description,omitempty"`
	AudioURL      *string    `gorm:"type:text" json:"audio_url,omitempty"`
	VideoURL      *string    `gorm:"type:text" json:"video_url,omitempty"`
	MediaPublicID *string    `gorm:"size:255" json:"-"`
	MediaType     string     `gorm:"size:10;not null;default:'audio'" json:"media_type"`
	Duration      int        `gorm:"default:0" json:"duration"`
	Transcript    *string    `gorm:"type:text" json:"transcript,omitempty"`
	Topic         *string    `gorm:"size:255" json:"topic,omitempty"`
	CEFRLevel     *string    `gorm:"column:cefr_level;size:2" json:"cefr_level,omitempty"`
	State         *string    `gorm:"size:100" json:"state,omitempty"`
	Audience      *string    `gorm:"size:100" json:"audience,omitempty"`
	Downloadable  bool       `gorm:"default:false" json:"downloadable"`
	Status        string     `gorm:"size:20;not null;default:'draft'" json:"status"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

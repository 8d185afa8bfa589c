package models

import (
	"time"

	"github.com/google/uuid"
)

type Exercise struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Slug          string     `gorm:"size:255;not null;unique" json:"slug"`
	Description   *string    `gorm:"type:text" json:"description,omitempty"`
	PodcastID     *uuid.UUID `gorm:"type:uuid" json:"podcast_id,omitempty"`
	ExerciseType  string     `gorm:"size:20;not null;default:'mcq'" json:"exercise_type"`
	Difficulty    string     `gorm:"size:20;not null;default:'beginner'" json:"difficulty"`
	Content       string     `gorm:"type:text;not null;default:'[]'" json:"-"`
	AnswerKey     *string    `gorm:"type:text" json:"-"`
	ShowAnswerKey bool       `gorm:"default:true" json:"show_answer_key"`
	Status        string     `gorm:"size:20;not null;default:'draft'" json:"status"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`

	Podcast *Podcast `gorm:"foreignkey:PodcastID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IDs are generated here rather than by the database so rows get the same
// keys on every dialect.
func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	assignID(&u.ID)
	return nil
}

func (o *OTPChallenge) BeforeCreate(tx *gorm.DB) error {
	assignID(&o.ID)
	return nil
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	assignID(&s.ID)
	return nil
}

func (n *NewsArticle) BeforeCreate(tx *gorm.DB) error {
	assignID(&n.ID)
	return nil
}

func (p *Podcast) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

func (e *Exercise) BeforeCreate(tx *gorm.DB) error {
	assignID(&e.ID)
	return nil
}

func (g *Gallery) BeforeCreate(tx *gorm.DB) error {
	assignID(&g.ID)
	return nil
}

func (p *Pedagogy) BeforeCreate(tx *gorm.DB) error {
	assignID(&p.ID)
	return nil
}

func (r *Resource) BeforeCreate(tx *gorm.DB) error {
	assignID(&r.ID)
	return nil
}

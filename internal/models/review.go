package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinRating = 1.0
	MaxRating = 5.0
)

type Review struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	CompanyID string    `json:"company_id" gorm:"not null;index;size:36"`
	UserID    string    `json:"user_id" gorm:"not null;index;size:36"`
	Rating    float64   `json:"rating" gorm:"not null"`
	Text      string    `json:"review_text" gorm:"column:review_text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}

	return nil
}

type ReviewPatch struct {
	Rating *float64
	Text   *string
}

func (p ReviewPatch) Fields() map[string]interface{} {
	fields := make(map[string]interface{})

	if p.Rating != nil {
		fields["rating"] = *p.Rating
	}
	if p.Text != nil {
		fields["review_text"] = *p.Text
	}

	return fields
}

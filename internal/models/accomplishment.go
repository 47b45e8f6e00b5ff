package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinAchievementScore = 1.0
	MaxAchievementScore = 10.0

	// DateLayout is the wire format of Accomplishment.Date.
	DateLayout = "2006-01-02"
)

type Accomplishment struct {
	ID               string    `json:"id" gorm:"primaryKey;size:36"`
	CompanyID        string    `json:"company_id" gorm:"not null;index;size:36"`
	Title            string    `json:"title" gorm:"not null"`
	Description      string    `json:"description"`
	AchievementScore *float64  `json:"achievement_score"`
	Date             string    `json:"date,omitempty" gorm:"size:10"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (a *Accomplishment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	return nil
}

type AccomplishmentPatch struct {
	Title            *string
	Description      *string
	AchievementScore *float64
	Date             *string
}

func (p AccomplishmentPatch) Fields() map[string]interface{} {
	fields := make(map[string]interface{})

	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.AchievementScore != nil {
		fields["achievement_score"] = *p.AchievementScore
	}
	if p.Date != nil {
		fields["date"] = *p.Date
	}

	return fields
}

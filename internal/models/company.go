package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36"`
	Name        string    `json:"name" gorm:"not null"`
	Industry    string    `json:"industry"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	return nil
}

// CompanyPatch carries the fields of a partial company update. Nil fields
// are left untouched.
type CompanyPatch struct {
	Name        *string
	Industry    *string
	Location    *string
	Description *string
}

// Fields maps the supplied fields to their column (and document) names.
func (p CompanyPatch) Fields() map[string]interface{} {
	fields := make(map[string]interface{})

	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Industry != nil {
		fields["industry"] = *p.Industry
	}
	if p.Location != nil {
		fields["location"] = *p.Location
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}

	return fields
}

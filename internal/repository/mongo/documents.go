package mongorepo

import (
	"time"

	"github.com/monocle-dev/companies/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (d userDocument) model() *models.User {
	return &models.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type companyDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Industry    string             `bson:"industry"`
	Location    string             `bson:"location"`
	Description string             `bson:"description"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d companyDocument) model() models.Company {
	return models.Company{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Industry:    d.Industry,
		Location:    d.Location,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type reviewDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CompanyID primitive.ObjectID `bson:"company_id"`
	UserID    primitive.ObjectID `bson:"user_id"`
	Rating    float64            `bson:"rating"`
	Text      string             `bson:"review_text"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d reviewDocument) model() models.Review {
	return models.Review{
		ID:        d.ID.Hex(),
		CompanyID: d.CompanyID.Hex(),
		UserID:    d.UserID.Hex(),
		Rating:    d.Rating,
		Text:      d.Text,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// Unscored accomplishments omit the field entirely so they sort after
// every scored one.
type accomplishmentDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	CompanyID        primitive.ObjectID `bson:"company_id"`
	Title            string             `bson:"title"`
	Description      string             `bson:"description"`
	AchievementScore *float64           `bson:"achievement_score,omitempty"`
	Date             string             `bson:"date,omitempty"`
	CreatedAt        time.Time          `bson:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at"`
}

func (d accomplishmentDocument) model() models.Accomplishment {
	return models.Accomplishment{
		ID:               d.ID.Hex(),
		CompanyID:        d.CompanyID.Hex(),
		Title:            d.Title,
		Description:      d.Description,
		AchievementScore: d.AchievementScore,
		Date:             d.Date,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}

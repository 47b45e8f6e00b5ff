// Package repository provides the data access layer for users, companies,
// reviews and accomplishments, plus the aggregate queries behind the
// statistics endpoints.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/monocle-dev/companies/internal/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already in use")
	ErrNotAuthor      = errors.New("review belongs to another user")
)

const (
	defaultTimeout = 3 * time.Second
	queryTimeout   = 5 * time.Second
)

// UserRepository defines the credential store operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// CompanyRepository defines company CRUD. Delete cascades to the company's
// reviews and accomplishments.
type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	List(ctx context.Context) ([]models.Company, error)
	FindByID(ctx context.Context, id string) (*models.Company, error)
	Update(ctx context.Context, id string, patch models.CompanyPatch) (*models.Company, error)
	Delete(ctx context.Context, id string) error
}

// ReviewRepository defines review CRUD.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	ListByCompany(ctx context.Context, companyID string) ([]models.Review, error)
	FindByID(ctx context.Context, id string) (*models.Review, error)
	// UpdateAuthorized applies patch in a single conditional write that only
	// matches when authorID wrote the review, unless asAdmin is set.
	UpdateAuthorized(ctx context.Context, id, authorID string, asAdmin bool, patch models.ReviewPatch) (*models.Review, error)
	Delete(ctx context.Context, id string) error
}

// AccomplishmentRepository defines accomplishment CRUD.
type AccomplishmentRepository interface {
	Create(ctx context.Context, accomplishment *models.Accomplishment) error
	ListByCompany(ctx context.Context, companyID string) ([]models.Accomplishment, error)
	FindByID(ctx context.Context, id string) (*models.Accomplishment, error)
	Update(ctx context.Context, id string, patch models.AccomplishmentPatch) (*models.Accomplishment, error)
	Delete(ctx context.Context, id string) error
}

// StatsRepository computes read-only views over reviews and accomplishments.
// Nothing is cached; every call recomputes from the stored records.
type StatsRepository interface {
	TopRatedCompanies(ctx context.Context, limit int) ([]models.CompanyRating, error)
	AverageRating(ctx context.Context, companyID string) (*models.RatingSummary, error)
	ReviewCounts(ctx context.Context) ([]models.CompanyReviewCount, error)
	RatingDistribution(ctx context.Context, companyID string) ([]models.RatingBucket, error)
	Engagement(ctx context.Context) ([]models.CompanyEngagement, error)
	TopAccomplishments(ctx context.Context, companyID string, limit int) ([]models.Accomplishment, error)
}

// Backend is the connection handle underneath a Store.
type Backend interface {
	Name() string
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Store bundles every repository over one backend connection. It is built
// once at startup and passed to the services that need it.
type Store struct {
	Users           UserRepository
	Companies       CompanyRepository
	Reviews         ReviewRepository
	Accomplishments AccomplishmentRepository
	Stats           StatsRepository

	Backend
}

package services

import (
	"context"
	"testing"

	"github.com/monocle-dev/companies/internal/models"
	"github.com/monocle-dev/companies/internal/repository"
)

func ptr[T any](v T) *T {
	return &v
}

func seedCompany(t *testing.T, store *repository.Store, name string) *models.Company {
	t.Helper()
	company := &models.Company{Name: name}
	if err := store.Companies.Create(context.Background(), company); err != nil {
		t.Fatalf("seed company: %v", err)
	}
	return company
}

func seedReview(t *testing.T, store *repository.Store, companyID, userID string, rating float64) *models.Review {
	t.Helper()
	review := &models.Review{CompanyID: companyID, UserID: userID, Rating: rating}
	if err := store.Reviews.Create(context.Background(), review); err != nil {
		t.Fatalf("seed review: %v", err)
	}
	return review
}

func seedAccomplishment(t *testing.T, store *repository.Store, companyID, title string, score *float64) *models.Accomplishment {
	t.Helper()
	accomplishment := &models.Accomplishment{CompanyID: companyID, Title: title, AchievementScore: score}
	if err := store.Accomplishments.Create(context.Background(), accomplishment); err != nil {
		t.Fatalf("seed accomplishment: %v", err)
	}
	return accomplishment
}

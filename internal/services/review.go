package services

import (
	"context"
	"errors"

	"github.com/monocle-dev/companies/internal/auth"
	"github.com/monocle-dev/companies/internal/models"
	"github.com/monocle-dev/companies/internal/repository"
	"github.com/monocle-dev/companies/internal/types"
)

type ReviewRequest struct {
	Rating *float64 `json:"rating" binding:"required"`
	Text   string   `json:"review_text"`
}

type UpdateReviewRequest struct {
	Rating *float64 `json:"rating"`
	Text   *string  `json:"review_text"`
}

type ReviewService interface {
	Create(ctx context.Context, principal *auth.Principal, companyID string, req ReviewRequest) (*models.Review, error)
	ListByCompany(ctx context.Context, companyID string) ([]models.Review, error)
	Update(ctx context.Context, principal *auth.Principal, id string, req UpdateReviewRequest) (*models.Review, error)
	Delete(ctx context.Context, id string) error
}

type reviewService struct {
	companies repository.CompanyRepository
	reviews   repository.ReviewRepository
	checker   auth.RoleChecker
	notifier  Notifier
}

func NewReviewService(companies repository.CompanyRepository, reviews repository.ReviewRepository, checker auth.RoleChecker, notifier Notifier) ReviewService {
	return &reviewService{
		companies: companies,
		reviews:   reviews,
		checker:   checker,
		notifier:  orNop(notifier),
	}
}

func validateRating(rating float64) error {
	if rating < models.MinRating || rating > models.MaxRating {
		return validationError("rating must be between %.1f and %.1f", models.MinRating, models.MaxRating)
	}
	return nil
}

func (s *reviewService) Create(ctx context.Context, principal *auth.Principal, companyID string, req ReviewRequest) (*models.Review, error) {
	if req.Rating == nil {
		return nil, validationError("rating is required")
	}

	if err := validateRating(*req.Rating); err != nil {
		return nil, err
	}

	if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		return nil, err
	}

	review := &models.Review{
		CompanyID: companyID,
		UserID:    principal.UserID,
		Rating:    *req.Rating,
		Text:      req.Text,
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	s.notifier.BroadcastRefresh(review.CompanyID, types.ReasonReviewCreated)

	return review, nil
}

func (s *reviewService) ListByCompany(ctx context.Context, companyID string) ([]models.Review, error) {
	return s.reviews.ListByCompany(ctx, companyID)
}

// Update lets the author or an admin change a review. The ownership test
// is part of the write itself, so a concurrent change of author cannot slip
// between a check and the update.
func (s *reviewService) Update(ctx context.Context, principal *auth.Principal, id string, req UpdateReviewRequest) (*models.Review, error) {
	patch := models.ReviewPatch{
		Rating: req.Rating,
		Text:   req.Text,
	}

	if patch.Rating != nil {
		if err := validateRating(*patch.Rating); err != nil {
			return nil, err
		}
	}

	if len(patch.Fields()) == 0 {
		return nil, validationError("no fields to update")
	}

	isAdmin, err := s.checker.HasRole(ctx, principal, models.RoleAdmin)

	if err != nil {
		return nil, err
	}

	review, err := s.reviews.UpdateAuthorized(ctx, id, principal.UserID, isAdmin, patch)

	if err != nil {
		if errors.Is(err, repository.ErrNotAuthor) {
			return nil, ErrPermissionDenied
		}
		return nil, err
	}

	s.notifier.BroadcastRefresh(review.CompanyID, types.ReasonReviewUpdated)

	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, id string) error {
	review, err := s.reviews.FindByID(ctx, id)

	if err != nil {
		return err
	}

	if err := s.reviews.Delete(ctx, id); err != nil {
		return err
	}

	s.notifier.BroadcastRefresh(review.CompanyID, types.ReasonReviewDeleted)

	return nil
}

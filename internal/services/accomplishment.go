package services

import (
	"context"
	"strings"
	"time"

	"github.com/monocle-dev/companies/internal/models"
	"github.com/monocle-dev/companies/internal/repository"
	"github.com/monocle-dev/companies/internal/types"
)

type AccomplishmentRequest struct {
	Title            string   `json:"title" binding:"required"`
	Description      string   `json:"description"`
	AchievementScore *float64 `json:"achievement_score"`
	Date             string   `json:"date"`
}

type UpdateAccomplishmentRequest struct {
	Title            *string  `json:"title"`
	Description      *string  `json:"description"`
	AchievementScore *float64 `json:"achievement_score"`
	Date             *string  `json:"date"`
}

type AccomplishmentService interface {
	Create(ctx context.Context, companyID string, req AccomplishmentRequest) (*models.Accomplishment, error)
	ListByCompany(ctx context.Context, companyID string) ([]models.Accomplishment, error)
	Update(ctx context.Context, id string, req UpdateAccomplishmentRequest) (*models.Accomplishment, error)
	Delete(ctx context.Context, id string) error
}

type accomplishmentService struct {
	companies       repository.CompanyRepository
	accomplishments repository.AccomplishmentRepository
	notifier        Notifier
}

func NewAccomplishmentService(companies repository.CompanyRepository, accomplishments repository.AccomplishmentRepository, notifier Notifier) AccomplishmentService {
	return &accomplishmentService{
		companies:       companies,
		accomplishments: accomplishments,
		notifier:        orNop(notifier),
	}
}

func validateScore(score float64) error {
	if score < models.MinAchievementScore || score > models.MaxAchievementScore {
		return validationError("achievement_score must be between %.1f and %.1f", models.MinAchievementScore, models.MaxAchievementScore)
	}
	return nil
}

// An empty date means unknown and is allowed.
func validateDate(date string) error {
	if date == "" {
		return nil
	}

	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return validationError("date must use the YYYY-MM-DD format")
	}

	return nil
}

func (s *accomplishmentService) Create(ctx context.Context, companyID string, req AccomplishmentRequest) (*models.Accomplishment, error) {
	title := strings.TrimSpace(req.Title)

	if title == "" {
		return nil, validationError("title is required")
	}

	if req.AchievementScore != nil {
		if err := validateScore(*req.AchievementScore); err != nil {
			return nil, err
		}
	}

	if err := validateDate(req.Date); err != nil {
		return nil, err
	}

	if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		return nil, err
	}

	accomplishment := &models.Accomplishment{
		CompanyID:        companyID,
		Title:            title,
		Description:      req.Description,
		AchievementScore: req.AchievementScore,
		Date:             req.Date,
	}

	if err := s.accomplishments.Create(ctx, accomplishment); err != nil {
		return nil, err
	}

	s.notifier.BroadcastRefresh(companyID, types.ReasonAccomplishmentCreated)

	return accomplishment, nil
}

func (s *accomplishmentService) ListByCompany(ctx context.Context, companyID string) ([]models.Accomplishment, error) {
	return s.accomplishments.ListByCompany(ctx, companyID)
}

func (s *accomplishmentService) Update(ctx context.Context, id string, req UpdateAccomplishmentRequest) (*models.Accomplishment, error) {
	patch := models.AccomplishmentPatch{
		Title:            req.Title,
		Description:      req.Description,
		AchievementScore: req.AchievementScore,
		Date:             req.Date,
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)

		if title == "" {
			return nil, validationError("title cannot be empty")
		}

		patch.Title = &title
	}

	if patch.AchievementScore != nil {
		if err := validateScore(*patch.AchievementScore); err != nil {
			return nil, err
		}
	}

	if patch.Date != nil {
		if err := validateDate(*patch.Date); err != nil {
			return nil, err
		}
	}

	if len(patch.Fields()) == 0 {
		return nil, validationError("no fields to update")
	}

	accomplishment, err := s.accomplishments.Update(ctx, id, patch)

	if err != nil {
		return nil, err
	}

	s.notifier.BroadcastRefresh(accomplishment.CompanyID, types.ReasonAccomplishmentUpdated)

	return accomplishment, nil
}

func (s *accomplishmentService) Delete(ctx context.Context, id string) error {
	accomplishment, err := s.accomplishments.FindByID(ctx, id)

	if err != nil {
		return err
	}

	if err := s.accomplishments.Delete(ctx, id); err != nil {
		return err
	}

	s.notifier.BroadcastRefresh(accomplishment.CompanyID, types.ReasonAccomplishmentDeleted)

	return nil
}

package services

import (
	"context"
	"math"

	"github.com/monocle-dev/companies/internal/models"
	"github.com/monocle-dev/companies/internal/repository"
)

// RankingLimit bounds the top-rated and top-accomplishment lists.
const RankingLimit = 5

type StatsService interface {
	TopRatedCompanies(ctx context.Context) ([]models.CompanyRating, error)
	AverageRating(ctx context.Context, companyID string) (*models.RatingSummary, error)
	ReviewCounts(ctx context.Context) ([]models.CompanyReviewCount, error)
	RatingDistribution(ctx context.Context, companyID string) ([]models.RatingBucket, error)
	Engagement(ctx context.Context) ([]models.CompanyEngagement, error)
	TopAccomplishments(ctx context.Context, companyID string) ([]models.Accomplishment, error)
}

type statsService struct {
	stats repository.StatsRepository
}

func NewStatsService(stats repository.StatsRepository) StatsService {
	return &statsService{stats: stats}
}

func roundRating(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *statsService) TopRatedCompanies(ctx context.Context) ([]models.CompanyRating, error) {
	return s.stats.TopRatedCompanies(ctx, RankingLimit)
}

// AverageRating reports ErrNoReviews rather than a zero mean when the
// company has no reviews.
func (s *statsService) AverageRating(ctx context.Context, companyID string) (*models.RatingSummary, error) {
	summary, err := s.stats.AverageRating(ctx, companyID)

	if err != nil {
		return nil, err
	}

	if summary.ReviewCount == 0 {
		return nil, ErrNoReviews
	}

	summary.AverageRating = roundRating(summary.AverageRating)

	return summary, nil
}

func (s *statsService) ReviewCounts(ctx context.Context) ([]models.CompanyReviewCount, error) {
	return s.stats.ReviewCounts(ctx)
}

func (s *statsService) RatingDistribution(ctx context.Context, companyID string) ([]models.RatingBucket, error) {
	return s.stats.RatingDistribution(ctx, companyID)
}

func (s *statsService) Engagement(ctx context.Context) ([]models.CompanyEngagement, error) {
	return s.stats.Engagement(ctx)
}

func (s *statsService) TopAccomplishments(ctx context.Context, companyID string) ([]models.Accomplishment, error) {
	return s.stats.TopAccomplishments(ctx, companyID, RankingLimit)
}

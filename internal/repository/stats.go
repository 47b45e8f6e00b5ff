package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/monocle-dev/companies/internal/models"
	"gorm.io/gorm"
)

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a StatsRepository that aggregates in SQL.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

// TopRatedCompanies inner-joins companies to reviews, so a company without
// reviews has no average and never ranks.
func (r *statsRepository) TopRatedCompanies(ctx context.Context, limit int) ([]models.CompanyRating, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows := make([]models.CompanyRating, 0)

	err := r.db.WithContext(ctx).
		Table("companies").
		Select("companies.id AS id, companies.name AS name, AVG(reviews.rating) AS average_rating").
		Joins("JOIN reviews ON reviews.company_id = companies.id").
		Group("companies.id, companies.name").
		Order("average_rating DESC").
		Limit(limit).
		Scan(&rows).Error

	if err != nil {
		return nil, fmt.Errorf("failed to compute top rated companies: %w", err)
	}

	return rows, nil
}

func (r *statsRepository) AverageRating(ctx context.Context, companyID string) (*models.RatingSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var row struct {
		AverageRating sql.NullFloat64
		ReviewCount   int64
	}

	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("AVG(rating) AS average_rating, COUNT(*) AS review_count").
		Where("company_id = ?", companyID).
		Scan(&row).Error

	if err != nil {
		return nil, fmt.Errorf("failed to compute average rating for company %s: %w", companyID, err)
	}

	summary := &models.RatingSummary{
		CompanyID:   companyID,
		ReviewCount: row.ReviewCount,
	}

	if row.AverageRating.Valid {
		summary.AverageRating = row.AverageRating.Float64
	}

	return summary, nil
}

func (r *statsRepository) ReviewCounts(ctx context.Context) ([]models.CompanyReviewCount, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows := make([]models.CompanyReviewCount, 0)

	err := r.db.WithContext(ctx).
		Table("companies").
		Select("companies.id AS id, companies.name AS name, COUNT(reviews.id) AS review_count").
		Joins("LEFT JOIN reviews ON reviews.company_id = companies.id").
		Group("companies.id, companies.name").
		Order("review_count DESC").
		Scan(&rows).Error

	if err != nil {
		return nil, fmt.Errorf("failed to compute review counts: %w", err)
	}

	return rows, nil
}

func (r *statsRepository) RatingDistribution(ctx context.Context, companyID string) ([]models.RatingBucket, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows := make([]models.RatingBucket, 0)

	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("rating AS rating, COUNT(*) AS count").
		Where("company_id = ?", companyID).
		Group("rating").
		Order("rating ASC").
		Scan(&rows).Error

	if err != nil {
		return nil, fmt.Errorf("failed to compute rating distribution for company %s: %w", companyID, err)
	}

	return rows, nil
}

// Engagement counts reviews and accomplishments with independent subqueries;
// joining both tables at once would multiply the counts.
func (r *statsRepository) Engagement(ctx context.Context) ([]models.CompanyEngagement, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows := make([]models.CompanyEngagement, 0)

	err := r.db.WithContext(ctx).
		Table("companies").
		Select("companies.id AS id, companies.name AS name, " +
			"(SELECT COUNT(*) FROM reviews WHERE reviews.company_id = companies.id) AS review_count, " +
			"(SELECT COUNT(*) FROM accomplishments WHERE accomplishments.company_id = companies.id) AS accomplishment_count").
		Order("review_count DESC, accomplishment_count DESC").
		Scan(&rows).Error

	if err != nil {
		return nil, fmt.Errorf("failed to compute engagement: %w", err)
	}

	return rows, nil
}

// TopAccomplishments orders unscored accomplishments last on every dialect;
// Postgres would otherwise put NULLs first in a descending sort.
func (r *statsRepository) TopAccomplishments(ctx context.Context, companyID string, limit int) ([]models.Accomplishment, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows := make([]models.Accomplishment, 0)

	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("CASE WHEN achievement_score IS NULL THEN 1 ELSE 0 END, achievement_score DESC").
		Limit(limit).
		Find(&rows).Error

	if err != nil {
		return nil, fmt.Errorf("failed to compute top accomplishments for company %s: %w", companyID, err)
	}

	return rows, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/monocle-dev/companies/internal/models"
	"gorm.io/gorm"
)

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a gorm-backed ReviewRepository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

func (r *reviewRepository) ListByCompany(ctx context.Context, companyID string) ([]models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	reviews := make([]models.Review, 0)

	if err := r.db.WithContext(ctx).Where("company_id = ?", companyID).Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews for company %s: %w", companyID, err)
	}

	return reviews, nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id string) (*models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var review models.Review

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&review).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find review %s: %w", id, err)
	}

	return &review, nil
}

func (r *reviewRepository) UpdateAuthorized(ctx context.Context, id, authorID string, asAdmin bool, patch models.ReviewPatch) (*models.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := r.db.WithContext(ctx).Model(&models.Review{}).Where("id = ?", id)

	if !asAdmin {
		query = query.Where("user_id = ?", authorID)
	}

	res := query.Updates(patch.Fields())

	if res.Error != nil {
		return nil, fmt.Errorf("failed to update review %s: %w", id, res.Error)
	}

	// Nothing matched: either the review is gone or someone else wrote it.
	// The write has already been refused, so this read cannot race it.
	if res.RowsAffected == 0 {
		existing, err := r.FindByID(ctx, id)

		if err != nil {
			return nil, err
		}

		if !asAdmin && existing.UserID != authorID {
			return nil, ErrNotAuthor
		}
	}

	return r.FindByID(ctx, id)
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Review{})

	if res.Error != nil {
		return fmt.Errorf("failed to delete review %s: %w", id, res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/monocle-dev/companies/internal/models"
	"gorm.io/gorm"
)

type accomplishmentRepository struct {
	db *gorm.DB
}

// NewAccomplishmentRepository creates a gorm-backed AccomplishmentRepository.
func NewAccomplishmentRepository(db *gorm.DB) AccomplishmentRepository {
	return &accomplishmentRepository{db: db}
}

func (r *accomplishmentRepository) Create(ctx context.Context, accomplishment *models.Accomplishment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(accomplishment).Error; err != nil {
		return fmt.Errorf("failed to create accomplishment: %w", err)
	}

	return nil
}

func (r *accomplishmentRepository) ListByCompany(ctx context.Context, companyID string) ([]models.Accomplishment, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	accomplishments := make([]models.Accomplishment, 0)

	if err := r.db.WithContext(ctx).Where("company_id = ?", companyID).Find(&accomplishments).Error; err != nil {
		return nil, fmt.Errorf("failed to list accomplishments for company %s: %w", companyID, err)
	}

	return accomplishments, nil
}

func (r *accomplishmentRepository) FindByID(ctx context.Context, id string) (*models.Accomplishment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var accomplishment models.Accomplishment

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&accomplishment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find accomplishment %s: %w", id, err)
	}

	return &accomplishment, nil
}

func (r *accomplishmentRepository) Update(ctx context.Context, id string, patch models.AccomplishmentPatch) (*models.Accomplishment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err := r.db.WithContext(ctx).Model(&models.Accomplishment{}).Where("id = ?", id).Updates(patch.Fields()).Error

	if err != nil {
		return nil, fmt.Errorf("failed to update accomplishment %s: %w", id, err)
	}

	return r.FindByID(ctx, id)
}

func (r *accomplishmentRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Accomplishment{})

	if res.Error != nil {
		return fmt.Errorf("failed to delete accomplishment %s: %w", id, res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

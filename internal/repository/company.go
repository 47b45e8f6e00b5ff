package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/monocle-dev/companies/internal/models"
	"gorm.io/gorm"
)

type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository creates a gorm-backed CompanyRepository.
func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *models.Company) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := r.db.WithContext(ctx).Create(company).Error; err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}

	return nil
}

func (r *companyRepository) List(ctx context.Context) ([]models.Company, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	companies := make([]models.Company, 0)

	if err := r.db.WithContext(ctx).Find(&companies).Error; err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	return companies, nil
}

func (r *companyRepository) FindByID(ctx context.Context, id string) (*models.Company, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var company models.Company

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&company).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company %s: %w", id, err)
	}

	return &company, nil
}

// Update writes only the supplied fields. RowsAffected is not trusted for
// existence because MySQL reports zero for unchanged rows, so the record is
// read back instead.
func (r *companyRepository) Update(ctx context.Context, id string, patch models.CompanyPatch) (*models.Company, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err := r.db.WithContext(ctx).Model(&models.Company{}).Where("id = ?", id).Updates(patch.Fields()).Error

	if err != nil {
		return nil, fmt.Errorf("failed to update company %s: %w", id, err)
	}

	return r.FindByID(ctx, id)
}

func (r *companyRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.Company{})

		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return ErrNotFound
		}

		if err := tx.Where("company_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return err
		}

		return tx.Where("company_id = ?", id).Delete(&models.Accomplishment{}).Error
	})

	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete company %s: %w", id, err)
	}

	return nil
}

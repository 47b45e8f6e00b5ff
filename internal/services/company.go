package services

import (
	"context"
	"strings"

	"github.com/monocle-dev/companies/internal/models"
	"github.com/monocle-dev/companies/internal/repository"
	"github.com/monocle-dev/companies/internal/types"
)

type CompanyRequest struct {
	Name        string `json:"name" binding:"required"`
	Industry    string `json:"industry"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// UpdateCompanyRequest has no id field, so an update can never rewrite it.
type UpdateCompanyRequest struct {
	Name        *string `json:"name"`
	Industry    *string `json:"industry"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
}

type CompanyService interface {
	Create(ctx context.Context, req CompanyRequest) (*models.Company, error)
	List(ctx context.Context) ([]models.Company, error)
	Get(ctx context.Context, id string) (*models.Company, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) (*models.Company, error)
	Delete(ctx context.Context, id string) error
}

type companyService struct {
	companies repository.CompanyRepository
	notifier  Notifier
}

func NewCompanyService(companies repository.CompanyRepository, notifier Notifier) CompanyService {
	return &companyService{
		companies: companies,
		notifier:  orNop(notifier),
	}
}

func (s *companyService) Create(ctx context.Context, req CompanyRequest) (*models.Company, error) {
	name := strings.TrimSpace(req.Name)

	if name == "" {
		return nil, validationError("company name is required")
	}

	company := &models.Company{
		Name:        name,
		Industry:    req.Industry,
		Location:    req.Location,
		Description: req.Description,
	}

	if err := s.companies.Create(ctx, company); err != nil {
		return nil, err
	}

	return company, nil
}

func (s *companyService) List(ctx context.Context) ([]models.Company, error) {
	return s.companies.List(ctx)
}

func (s *companyService) Get(ctx context.Context, id string) (*models.Company, error) {
	return s.companies.FindByID(ctx, id)
}

func (s *companyService) Update(ctx context.Context, id string, req UpdateCompanyRequest) (*models.Company, error) {
	patch := models.CompanyPatch{
		Name:        req.Name,
		Industry:    req.Industry,
		Location:    req.Location,
		Description: req.Description,
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)

		if name == "" {
			return nil, validationError("company name cannot be empty")
		}

		patch.Name = &name
	}

	if len(patch.Fields()) == 0 {
		return nil, validationError("no fields to update")
	}

	company, err := s.companies.Update(ctx, id, patch)

	if err != nil {
		return nil, err
	}

	s.notifier.BroadcastRefresh(company.ID, types.ReasonCompanyUpdated)

	return company, nil
}

func (s *companyService) Delete(ctx context.Context, id string) error {
	if err := s.companies.Delete(ctx, id); err != nil {
		return err
	}

	s.notifier.BroadcastRefresh(id, types.ReasonCompanyDeleted)

	return nil
}

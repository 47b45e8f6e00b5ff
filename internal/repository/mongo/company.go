package mongorepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/monocle-dev/companies/internal/models"
	"github.com/monocle-dev/companies/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type companyRepository struct {
	companies       *mongo.Collection
	reviews         *mongo.Collection
	accomplishments *mongo.Collection
}

func NewCompanyRepository(db *mongo.Database) repository.CompanyRepository {
	return &companyRepository{
		companies:       db.Collection(companiesCollection),
		reviews:         db.Collection(reviewsCollection),
		accomplishments: db.Collection(accomplishmentsCollection),
	}
}

func (r *companyRepository) Create(ctx context.Context, company *models.Company) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	ts := now()

	doc := companyDocument{
		ID:          primitive.NewObjectID(),
		Name:        company.Name,
		Industry:    company.Industry,
		Location:    company.Location,
		Description: company.Description,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}

	if _, err := r.companies.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}

	*company = doc.model()

	return nil
}

func (r *companyRepository) List(ctx context.Context) ([]models.Company, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.companies.Find(ctx, bson.D{})

	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}

	var docs []companyDocument

	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode companies: %w", err)
	}

	companies := make([]models.Company, 0, len(docs))

	for _, doc := range docs {
		companies = append(companies, doc.model())
	}

	return companies, nil
}

func (r *companyRepository) FindByID(ctx context.Context, id string) (*models.Company, error) {
	oid, err := objectID(id)

	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc companyDocument

	err = r.companies.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company %s: %w", id, err)
	}

	company := doc.model()

	return &company, nil
}

func (r *companyRepository) Update(ctx context.Context, id string, patch models.CompanyPatch) (*models.Company, error) {
	oid, err := objectID(id)

	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.companies.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, setDocument(patch.Fields(), now()))

	if err != nil {
		return nil, fmt.Errorf("failed to update company %s: %w", id, err)
	}

	if res.MatchedCount == 0 {
		return nil, repository.ErrNotFound
	}

	return r.FindByID(ctx, id)
}

// Delete removes the company and then its reviews and accomplishments.
// The steps are not transactional; a failure after the first leaves
// orphaned children that the statistics queries already ignore.
func (r *companyRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)

	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.companies.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})

	if err != nil {
		return fmt.Errorf("failed to delete company %s: %w", id, err)
	}

	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}

	children := bson.D{{Key: "company_id", Value: oid}}

	if _, err := r.reviews.DeleteMany(ctx, children); err != nil {
		return fmt.Errorf("failed to delete reviews of company %s: %w", id, err)
	}

	if _, err := r.accomplishments.DeleteMany(ctx, children); err != nil {
		return fmt.Errorf("failed to delete accomplishments of company %s: %w", id, err)
	}

	return nil
}

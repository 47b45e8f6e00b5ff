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

type accomplishmentRepository struct {
	accomplishments *mongo.Collection
}

func NewAccomplishmentRepository(db *mongo.Database) repository.AccomplishmentRepository {
	return &accomplishmentRepository{accomplishments: db.Collection(accomplishmentsCollection)}
}

func (r *accomplishmentRepository) Create(ctx context.Context, accomplishment *models.Accomplishment) error {
	companyID, err := objectID(accomplishment.CompanyID)

	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	ts := now()

	doc := accomplishmentDocument{
		ID:               primitive.NewObjectID(),
		CompanyID:        companyID,
		Title:            accomplishment.Title,
		Description:      accomplishment.Description,
		AchievementScore: accomplishment.AchievementScore,
		Date:             accomplishment.Date,
		CreatedAt:        ts,
		UpdatedAt:        ts,
	}

	if _, err := r.accomplishments.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create accomplishment: %w", err)
	}

	*accomplishment = doc.model()

	return nil
}

func (r *accomplishmentRepository) ListByCompany(ctx context.Context, companyID string) ([]models.Accomplishment, error) {
	oid, err := objectID(companyID)

	if err != nil {
		return make([]models.Accomplishment, 0), nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.accomplishments.Find(ctx, bson.D{{Key: "company_id", Value: oid}})

	if err != nil {
		return nil, fmt.Errorf("failed to list accomplishments for company %s: %w", companyID, err)
	}

	return decodeAccomplishments(ctx, cursor)
}

func (r *accomplishmentRepository) FindByID(ctx context.Context, id string) (*models.Accomplishment, error) {
	oid, err := objectID(id)

	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc accomplishmentDocument

	err = r.accomplishments.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find accomplishment %s: %w", id, err)
	}

	accomplishment := doc.model()

	return &accomplishment, nil
}

func (r *accomplishmentRepository) Update(ctx context.Context, id string, patch models.AccomplishmentPatch) (*models.Accomplishment, error) {
	oid, err := objectID(id)

	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.accomplishments.UpdateOne(ctx, bson.D{{Key: "_id", Value: oid}}, setDocument(patch.Fields(), now()))

	if err != nil {
		return nil, fmt.Errorf("failed to update accomplishment %s: %w", id, err)
	}

	if res.MatchedCount == 0 {
		return nil, repository.ErrNotFound
	}

	return r.FindByID(ctx, id)
}

func (r *accomplishmentRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)

	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.accomplishments.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})

	if err != nil {
		return fmt.Errorf("failed to delete accomplishment %s: %w", id, err)
	}

	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func decodeAccomplishments(ctx context.Context, cursor *mongo.Cursor) ([]models.Accomplishment, error) {
	var docs []accomplishmentDocument

	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode accomplishments: %w", err)
	}

	accomplishments := make([]models.Accomplishment, 0, len(docs))

	for _, doc := range docs {
		accomplishments = append(accomplishments, doc.model())
	}

	return accomplishments, nil
}

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

type reviewRepository struct {
	reviews *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) repository.ReviewRepository {
	return &reviewRepository{reviews: db.Collection(reviewsCollection)}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	companyID, err := objectID(review.CompanyID)

	if err != nil {
		return err
	}

	userID, err := objectID(review.UserID)

	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	ts := now()

	doc := reviewDocument{
		ID:        primitive.NewObjectID(),
		CompanyID: companyID,
		UserID:    userID,
		Rating:    review.Rating,
		Text:      review.Text,
		CreatedAt: ts,
		UpdatedAt: ts,
	}

	if _, err := r.reviews.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}

	*review = doc.model()

	return nil
}

func (r *reviewRepository) ListByCompany(ctx context.Context, companyID string) ([]models.Review, error) {
	oid, err := objectID(companyID)

	if err != nil {
		return make([]models.Review, 0), nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.reviews.Find(ctx, bson.D{{Key: "company_id", Value: oid}})

	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for company %s: %w", companyID, err)
	}

	var docs []reviewDocument

	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	reviews := make([]models.Review, 0, len(docs))

	for _, doc := range docs {
		reviews = append(reviews, doc.model())
	}

	return reviews, nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id string) (*models.Review, error) {
	oid, err := objectID(id)

	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc reviewDocument

	err = r.reviews.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find review %s: %w", id, err)
	}

	review := doc.model()

	return &review, nil
}

// reviewUpdateFilter matches the review only when the caller may change it.
func reviewUpdateFilter(id, authorID primitive.ObjectID, asAdmin bool) bson.D {
	filter := bson.D{{Key: "_id", Value: id}}

	if !asAdmin {
		filter = append(filter, bson.E{Key: "user_id", Value: authorID})
	}

	return filter
}

func (r *reviewRepository) UpdateAuthorized(ctx context.Context, id, authorID string, asAdmin bool, patch models.ReviewPatch) (*models.Review, error) {
	oid, err := objectID(id)

	if err != nil {
		return nil, err
	}

	// A malformed author id matches no review; the follow-up read below
	// then reports the caller as not the author.
	author, _ := primitive.ObjectIDFromHex(authorID)

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.reviews.UpdateOne(ctx, reviewUpdateFilter(oid, author, asAdmin), setDocument(patch.Fields(), now()))

	if err != nil {
		return nil, fmt.Errorf("failed to update review %s: %w", id, err)
	}

	if res.MatchedCount == 0 {
		existing, err := r.FindByID(ctx, id)

		if err != nil {
			return nil, err
		}

		if !asAdmin && existing.UserID != authorID {
			return nil, repository.ErrNotAuthor
		}
	}

	return r.FindByID(ctx, id)
}

func (r *reviewRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)

	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.reviews.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})

	if err != nil {
		return fmt.Errorf("failed to delete review %s: %w", id, err)
	}

	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}

	return nil
}

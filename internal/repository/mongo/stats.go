package mongorepo

import (
	"context"
	"fmt"

	"github.com/monocle-dev/companies/internal/models"
	"github.com/monocle-dev/companies/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type statsRepository struct {
	companies       *mongo.Collection
	reviews         *mongo.Collection
	accomplishments *mongo.Collection
}

// NewStatsRepository creates a StatsRepository that aggregates with
// pipelines. The pipelines are built by the functions below so they can be
// inspected without a server.
func NewStatsRepository(db *mongo.Database) repository.StatsRepository {
	return &statsRepository{
		companies:       db.Collection(companiesCollection),
		reviews:         db.Collection(reviewsCollection),
		accomplishments: db.Collection(accomplishmentsCollection),
	}
}

// topRatedPipeline runs on reviews. Grouping first and unwinding the
// company lookup gives inner join semantics: companies without reviews
// never appear and reviews of deleted companies are dropped.
func topRatedPipeline(limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$company_id"},
			{Key: "average_rating", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: companiesCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "company"},
		}}},
		{{Key: "$unwind", Value: "$company"}},
		{{Key: "$sort", Value: bson.D{{Key: "average_rating", Value: -1}}}},
		{{Key: "$limit", Value: int64(limit)}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "name", Value: "$company.name"},
			{Key: "average_rating", Value: 1},
		}}},
	}
}

func averageRatingPipeline(companyID primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "company_id", Value: companyID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "average_rating", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
			{Key: "review_count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
}

// reviewCountsPipeline runs on companies so that companies with no
// reviews are reported with a zero count.
func reviewCountsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: reviewsCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "company_id"},
			{Key: "as", Value: "reviews"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "name", Value: 1},
			{Key: "review_count", Value: bson.D{{Key: "$size", Value: "$reviews"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "review_count", Value: -1}}}},
	}
}

func ratingDistributionPipeline(companyID primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "company_id", Value: companyID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$rating"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}

// engagementPipeline looks up the two child collections separately so one
// count never multiplies the other.
func engagementPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: reviewsCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "company_id"},
			{Key: "as", Value: "reviews"},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: accomplishmentsCollection},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "company_id"},
			{Key: "as", Value: "accomplishments"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "name", Value: 1},
			{Key: "review_count", Value: bson.D{{Key: "$size", Value: "$reviews"}}},
			{Key: "accomplishment_count", Value: bson.D{{Key: "$size", Value: "$accomplishments"}}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "review_count", Value: -1},
			{Key: "accomplishment_count", Value: -1},
		}}},
	}
}

// topAccomplishmentsPipeline relies on missing achievement_score sorting
// below every number in a descending sort.
func topAccomplishmentsPipeline(companyID primitive.ObjectID, limit int) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "company_id", Value: companyID}}}},
		{{Key: "$sort", Value: bson.D{{Key: "achievement_score", Value: -1}}}},
		{{Key: "$limit", Value: int64(limit)}},
	}
}

func (r *statsRepository) TopRatedCompanies(ctx context.Context, limit int) ([]models.CompanyRating, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var docs []struct {
		ID            primitive.ObjectID `bson:"_id"`
		Name          string             `bson:"name"`
		AverageRating float64            `bson:"average_rating"`
	}

	if err := aggregate(ctx, r.reviews, topRatedPipeline(limit), &docs); err != nil {
		return nil, fmt.Errorf("failed to compute top rated companies: %w", err)
	}

	rows := make([]models.CompanyRating, 0, len(docs))

	for _, doc := range docs {
		rows = append(rows, models.CompanyRating{
			ID:            doc.ID.Hex(),
			Name:          doc.Name,
			AverageRating: doc.AverageRating,
		})
	}

	return rows, nil
}

func (r *statsRepository) AverageRating(ctx context.Context, companyID string) (*models.RatingSummary, error) {
	summary := &models.RatingSummary{CompanyID: companyID}

	oid, err := objectID(companyID)

	if err != nil {
		return summary, nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var docs []struct {
		AverageRating float64 `bson:"average_rating"`
		ReviewCount   int64   `bson:"review_count"`
	}

	if err := aggregate(ctx, r.reviews, averageRatingPipeline(oid), &docs); err != nil {
		return nil, fmt.Errorf("failed to compute average rating for company %s: %w", companyID, err)
	}

	if len(docs) > 0 {
		summary.AverageRating = docs[0].AverageRating
		summary.ReviewCount = docs[0].ReviewCount
	}

	return summary, nil
}

func (r *statsRepository) ReviewCounts(ctx context.Context) ([]models.CompanyReviewCount, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var docs []struct {
		ID          primitive.ObjectID `bson:"_id"`
		Name        string             `bson:"name"`
		ReviewCount int64              `bson:"review_count"`
	}

	if err := aggregate(ctx, r.companies, reviewCountsPipeline(), &docs); err != nil {
		return nil, fmt.Errorf("failed to compute review counts: %w", err)
	}

	rows := make([]models.CompanyReviewCount, 0, len(docs))

	for _, doc := range docs {
		rows = append(rows, models.CompanyReviewCount{
			ID:          doc.ID.Hex(),
			Name:        doc.Name,
			ReviewCount: doc.ReviewCount,
		})
	}

	return rows, nil
}

func (r *statsRepository) RatingDistribution(ctx context.Context, companyID string) ([]models.RatingBucket, error) {
	rows := make([]models.RatingBucket, 0)

	oid, err := objectID(companyID)

	if err != nil {
		return rows, nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var docs []struct {
		Rating float64 `bson:"_id"`
		Count  int64   `bson:"count"`
	}

	if err := aggregate(ctx, r.reviews, ratingDistributionPipeline(oid), &docs); err != nil {
		return nil, fmt.Errorf("failed to compute rating distribution for company %s: %w", companyID, err)
	}

	for _, doc := range docs {
		rows = append(rows, models.RatingBucket{Rating: doc.Rating, Count: doc.Count})
	}

	return rows, nil
}

func (r *statsRepository) Engagement(ctx context.Context) ([]models.CompanyEngagement, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var docs []struct {
		ID                  primitive.ObjectID `bson:"_id"`
		Name                string             `bson:"name"`
		ReviewCount         int64              `bson:"review_count"`
		AccomplishmentCount int64              `bson:"accomplishment_count"`
	}

	if err := aggregate(ctx, r.companies, engagementPipeline(), &docs); err != nil {
		return nil, fmt.Errorf("failed to compute engagement: %w", err)
	}

	rows := make([]models.CompanyEngagement, 0, len(docs))

	for _, doc := range docs {
		rows = append(rows, models.CompanyEngagement{
			ID:                  doc.ID.Hex(),
			Name:                doc.Name,
			ReviewCount:         doc.ReviewCount,
			AccomplishmentCount: doc.AccomplishmentCount,
		})
	}

	return rows, nil
}

func (r *statsRepository) TopAccomplishments(ctx context.Context, companyID string, limit int) ([]models.Accomplishment, error) {
	oid, err := objectID(companyID)

	if err != nil {
		return make([]models.Accomplishment, 0), nil
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := r.accomplishments.Aggregate(ctx, topAccomplishmentsPipeline(oid, limit))

	if err != nil {
		return nil, fmt.Errorf("failed to compute top accomplishments for company %s: %w", companyID, err)
	}

	return decodeAccomplishments(ctx, cursor)
}

func aggregate(ctx context.Context, collection *mongo.Collection, pipeline mongo.Pipeline, out interface{}) error {
	cursor, err := collection.Aggregate(ctx, pipeline)

	if err != nil {
		return err
	}

	return cursor.All(ctx, out)
}

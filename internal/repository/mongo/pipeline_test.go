package mongorepo

import (
	"testing"
	"time"

	"github.com/monocle-dev/companies/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func stageNames(p mongo.Pipeline) []string {
	names := make([]string, 0, len(p))
	for _, stage := range p {
		names = append(names, stage[0].Key)
	}
	return names
}

func stageValue(t *testing.T, p mongo.Pipeline, name string) interface{} {
	t.Helper()
	for _, stage := range p {
		if stage[0].Key == name {
			return stage[0].Value
		}
	}
	t.Fatalf("pipeline has no %s stage", name)
	return nil
}

func TestTopRatedPipeline(t *testing.T) {
	p := topRatedPipeline(5)

	assert.Equal(t, []string{"$group", "$lookup", "$unwind", "$sort", "$limit", "$project"}, stageNames(p))
	assert.Equal(t, int64(5), stageValue(t, p, "$limit"))
	assert.Equal(t, bson.D{{Key: "average_rating", Value: -1}}, stageValue(t, p, "$sort"))
	assert.Equal(t, "$company", stageValue(t, p, "$unwind"))
}

func TestAverageRatingPipeline(t *testing.T) {
	id := primitive.NewObjectID()
	p := averageRatingPipeline(id)

	assert.Equal(t, []string{"$match", "$group"}, stageNames(p))
	assert.Equal(t, bson.D{{Key: "company_id", Value: id}}, stageValue(t, p, "$match"))
}

func TestReviewCountsPipelineKeepsEveryCompany(t *testing.T) {
	p := reviewCountsPipeline()

	// No $match or $unwind, so companies without reviews survive with $size 0.
	assert.Equal(t, []string{"$lookup", "$project", "$sort"}, stageNames(p))
}

func TestRatingDistributionPipelineSortsAscending(t *testing.T) {
	p := ratingDistributionPipeline(primitive.NewObjectID())

	assert.Equal(t, []string{"$match", "$group", "$sort"}, stageNames(p))
	assert.Equal(t, bson.D{{Key: "_id", Value: 1}}, stageValue(t, p, "$sort"))
}

func TestEngagementPipelineSortOrder(t *testing.T) {
	p := engagementPipeline()

	assert.Equal(t, []string{"$lookup", "$lookup", "$project", "$sort"}, stageNames(p))
	assert.Equal(t, bson.D{
		{Key: "review_count", Value: -1},
		{Key: "accomplishment_count", Value: -1},
	}, stageValue(t, p, "$sort"))
}

func TestTopAccomplishmentsPipeline(t *testing.T) {
	id := primitive.NewObjectID()
	p := topAccomplishmentsPipeline(id, 5)

	assert.Equal(t, []string{"$match", "$sort", "$limit"}, stageNames(p))
	assert.Equal(t, bson.D{{Key: "achievement_score", Value: -1}}, stageValue(t, p, "$sort"))
	assert.Equal(t, int64(5), stageValue(t, p, "$limit"))
}

func TestObjectID(t *testing.T) {
	id := primitive.NewObjectID()

	got, err := objectID(id.Hex())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = objectID("not-an-object-id")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = objectID("")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReviewUpdateFilter(t *testing.T) {
	id := primitive.NewObjectID()
	author := primitive.NewObjectID()

	assert.Equal(t, bson.D{{Key: "_id", Value: id}}, reviewUpdateFilter(id, author, true))
	assert.Equal(t, bson.D{
		{Key: "_id", Value: id},
		{Key: "user_id", Value: author},
	}, reviewUpdateFilter(id, author, false))
}

func TestSetDocument(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	update := setDocument(map[string]interface{}{"name": "Acme"}, ts)

	require.Len(t, update, 1)
	assert.Equal(t, "$set", update[0].Key)
	assert.Equal(t, bson.M{"name": "Acme", "updated_at": ts}, update[0].Value)
}

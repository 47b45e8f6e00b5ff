// Package mongorepo implements the repository interfaces on MongoDB.
// Documents use native ObjectIDs for _id and for every reference field;
// the hex strings seen by the rest of the application are converted here.
package mongorepo

import (
	"context"
	"fmt"
	"time"

	"github.com/monocle-dev/companies/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection           = "users"
	companiesCollection       = "companies"
	reviewsCollection         = "reviews"
	accomplishmentsCollection = "accomplishments"
)

const (
	connectTimeout = 10 * time.Second
	defaultTimeout = 3 * time.Second
	queryTimeout   = 5 * time.Second
)

// Connect dials MongoDB, checks the primary answers and makes sure the
// indexes the repositories rely on exist.
func Connect(ctx context.Context, uri, database string) (*repository.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))

	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	db := client.Database(database)

	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return NewStore(client, db), nil
}

// NewStore builds a Store over an already connected database.
func NewStore(client *mongo.Client, db *mongo.Database) *repository.Store {
	return &repository.Store{
		Users:           NewUserRepository(db),
		Companies:       NewCompanyRepository(db),
		Reviews:         NewReviewRepository(db),
		Accomplishments: NewAccomplishmentRepository(db),
		Stats:           NewStatsRepository(db),
		Backend:         &backend{client: client},
	}
}

// EnsureIndexes creates the unique email index and the company_id indexes
// used by every query-by-parent. It is safe to call on every start.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		reviewsCollection: {
			{Keys: bson.D{{Key: "company_id", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		},
		accomplishmentsCollection: {
			{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "achievement_score", Value: -1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", collection, err)
		}
	}

	return nil
}

type backend struct {
	client *mongo.Client
}

func (b *backend) Name() string {
	return "mongo"
}

func (b *backend) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return b.client.Ping(ctx, readpref.Primary())
}

func (b *backend) Close(ctx context.Context) error {
	return b.client.Disconnect(ctx)
}

// objectID converts an id received from a caller. An id that is not valid
// hex cannot name any document, so it is reported as not found.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)

	if err != nil {
		return primitive.NilObjectID, repository.ErrNotFound
	}

	return oid, nil
}

// setDocument turns a patch field map into a $set update that also bumps
// updated_at.
func setDocument(fields map[string]interface{}, now time.Time) bson.D {
	set := bson.M{}

	for k, v := range fields {
		set[k] = v
	}

	set["updated_at"] = now

	return bson.D{{Key: "$set", Value: set}}
}

func now() time.Time {
	return time.Now().UTC()
}

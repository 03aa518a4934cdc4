package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names in the parcel database.
const (
	ParcelsCollection = "parcels"
	UsersCollection   = "users"
	RidersCollection  = "riders"
)

// Collection is the subset of *mongo.Collection the repositories use.
type Collection interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
}

// Ensure interfaces are satisfied.
var (
	_ Collection = (*mongo.Collection)(nil)
	_ Collection = CollectionFunc(nil)
)

// CollectionFunc resolves the collection on every call. It lets repositories
// be wired before the database is reachable; calls fail with the resolve
// error until it is.
type CollectionFunc func(ctx context.Context) (*mongo.Collection, error)

func (f CollectionFunc) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	coll, err := f(ctx)
	if err != nil {
		return nil, err
	}
	return coll.InsertOne(ctx, document, opts...)
}

func (f CollectionFunc) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult {
	coll, err := f(ctx)
	if err != nil {
		return mongo.NewSingleResultFromDocument(bson.D{}, err, nil)
	}
	return coll.FindOne(ctx, filter, opts...)
}

func (f CollectionFunc) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	coll, err := f(ctx)
	if err != nil {
		return nil, err
	}
	return coll.Find(ctx, filter, opts...)
}

// EnsureIndexes creates the indexes the repositories rely on.
// The unique email index closes the register check-then-insert race.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_unique").SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}

	_, err = db.Collection(ParcelsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "creator_email", Value: 1},
			{Key: "creation_date", Value: -1},
		},
		Options: options.Index().SetName("creator_email_creation_date"),
	})
	if err != nil {
		return fmt.Errorf("failed to create parcels index: %w", err)
	}

	return nil
}

// idString renders a generated or caller-supplied _id for API responses.
func idString(id interface{}) string {
	switch v := id.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"parcel/internal/domain"
	"parcel/internal/repository"
)

// ParcelRepository implements repository.ParcelRepository using MongoDB.
type ParcelRepository struct {
	coll Collection
}

// NewParcelRepository creates a new ParcelRepository.
func NewParcelRepository(coll Collection) *ParcelRepository {
	return &ParcelRepository{coll: coll}
}

// Create inserts the parcel document as supplied.
func (r *ParcelRepository) Create(ctx context.Context, parcel domain.Document) (string, error) {
	res, err := r.coll.InsertOne(ctx, bson.M(parcel))
	if err != nil {
		return "", err
	}
	return idString(res.InsertedID), nil
}

// List retrieves parcels sorted by creation_date descending.
func (r *ParcelRepository) List(ctx context.Context, filter repository.ParcelFilter) ([]domain.Document, error) {
	query := bson.M{}
	if filter.CreatorEmail != "" {
		query[domain.FieldCreatorEmail] = filter.CreatorEmail
	}

	opts := options.Find().SetSort(bson.D{{Key: domain.FieldCreationDate, Value: -1}})

	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []bson.M
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	parcels := make([]domain.Document, 0, len(rows))
	for _, row := range rows {
		parcels = append(parcels, domain.Document(row))
	}
	return parcels, nil
}

package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"parcel/internal/domain"
)

// RiderRepository implements repository.RiderRepository using MongoDB.
type RiderRepository struct {
	coll Collection
}

// NewRiderRepository creates a new RiderRepository.
func NewRiderRepository(coll Collection) *RiderRepository {
	return &RiderRepository{coll: coll}
}

// Create adds a new rider. No uniqueness is checked.
func (r *RiderRepository) Create(ctx context.Context, rider domain.Document) (*domain.InsertResult, error) {
	res, err := r.coll.InsertOne(ctx, bson.M(rider))
	if err != nil {
		return nil, err
	}
	return &domain.InsertResult{
		Acknowledged: true,
		InsertedID:   idString(res.InsertedID),
	}, nil
}

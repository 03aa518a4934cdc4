package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"parcel/internal/domain"
	"parcel/internal/repository"
)

// UserRepository implements repository.UserRepository using MongoDB.
type UserRepository struct {
	coll Collection
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(coll Collection) *UserRepository {
	return &UserRepository{coll: coll}
}

// Create adds a new user.
func (r *UserRepository) Create(ctx context.Context, user domain.Document) (string, error) {
	res, err := r.coll.InsertOne(ctx, bson.M(user))
	if mongo.IsDuplicateKeyError(err) {
		return "", repository.ErrDuplicate
	}
	if err != nil {
		return "", err
	}
	return idString(res.InsertedID), nil
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.Document, error) {
	var user bson.M
	err := r.coll.FindOne(ctx, bson.M{domain.FieldEmail: email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return domain.Document(user), nil
}

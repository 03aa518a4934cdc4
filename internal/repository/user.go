package repository

import (
	"context"

	"parcel/internal/domain"
)

// UserRepository defines the persistence operations for users.
type UserRepository interface {
	// Create inserts a user document and returns its generated ID.
	// Returns ErrDuplicate if a user with the same email already exists.
	Create(ctx context.Context, user domain.Document) (string, error)

	// GetByEmail retrieves a user by exact email match.
	GetByEmail(ctx context.Context, email string) (domain.Document, error)
}

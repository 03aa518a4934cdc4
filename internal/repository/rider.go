package repository

import (
	"context"

	"parcel/internal/domain"
)

// RiderRepository defines the persistence operations for riders.
type RiderRepository interface {
	// Create inserts a rider document.
	Create(ctx context.Context, rider domain.Document) (*domain.InsertResult, error)
}

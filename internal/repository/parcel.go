package repository

import (
	"context"

	"parcel/internal/domain"
)

// ParcelFilter selects parcels for listing. Zero value selects everything.
type ParcelFilter struct {
	CreatorEmail string
}

// ParcelRepository defines the persistence operations for parcels.
type ParcelRepository interface {
	// Create inserts a parcel document and returns its generated ID.
	Create(ctx context.Context, parcel domain.Document) (string, error)

	// List returns parcels matching the filter, most recent creation_date first.
	List(ctx context.Context, filter ParcelFilter) ([]domain.Document, error)
}

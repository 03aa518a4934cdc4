package service

import (
	"context"
	"fmt"

	"parcel/internal/domain"
	"parcel/internal/repository"
)

// ParcelService handles parcel operations.
type ParcelService struct {
	parcelRepo repository.ParcelRepository
}

// NewParcelService creates a new ParcelService.
func NewParcelService(parcelRepo repository.ParcelRepository) *ParcelService {
	return &ParcelService{parcelRepo: parcelRepo}
}

// List returns parcels booked by email, or every parcel when email is empty.
// Results are ordered by creation_date, most recent first.
func (s *ParcelService) List(ctx context.Context, email string) ([]domain.Document, error) {
	parcels, err := s.parcelRepo.List(ctx, repository.ParcelFilter{CreatorEmail: email})
	if err != nil {
		return nil, fmt.Errorf("list parcels: %w", err)
	}
	if parcels == nil {
		parcels = []domain.Document{}
	}
	return parcels, nil
}

// Create stores the parcel document verbatim and returns its ID.
func (s *ParcelService) Create(ctx context.Context, parcel domain.Document) (string, error) {
	if parcel == nil {
		return "", ErrInvalidDocument
	}

	id, err := s.parcelRepo.Create(ctx, parcel)
	if err != nil {
		return "", fmt.Errorf("create parcel: %w", err)
	}
	return id, nil
}

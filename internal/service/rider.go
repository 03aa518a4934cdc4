package service

import (
	"context"
	"fmt"

	"parcel/internal/domain"
	"parcel/internal/repository"
)

// RiderService handles rider registration.
type RiderService struct {
	riderRepo repository.RiderRepository
}

// NewRiderService creates a new RiderService.
func NewRiderService(riderRepo repository.RiderRepository) *RiderService {
	return &RiderService{riderRepo: riderRepo}
}

// Create stores the rider document verbatim. Duplicates are allowed.
func (s *RiderService) Create(ctx context.Context, rider domain.Document) (*domain.InsertResult, error) {
	if rider == nil {
		return nil, ErrInvalidDocument
	}

	res, err := s.riderRepo.Create(ctx, rider)
	if err != nil {
		return nil, fmt.Errorf("create rider: %w", err)
	}
	return res, nil
}

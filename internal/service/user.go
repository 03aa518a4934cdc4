package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"parcel/internal/domain"
	"parcel/internal/repository"
)

// UserService handles user registration and lookup.
type UserService struct {
	userRepo repository.UserRepository
	validate *validator.Validate
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		validate: validator.New(),
	}
}

// RegisterResult is the outcome of Register.
type RegisterResult struct {
	Inserted bool
	ID       string
}

// Register inserts the user unless one with the same email already exists.
// An existing user is not an error: Inserted is false and storage is untouched.
func (s *UserService) Register(ctx context.Context, user domain.Document) (*RegisterResult, error) {
	email, ok := user.String(domain.FieldEmail)
	if !ok || s.validate.Var(email, "required") != nil {
		return nil, ErrInvalidEmail
	}

	// The lookup must complete before the insert is issued.
	_, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return &RegisterResult{Inserted: false}, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	id, err := s.userRepo.Create(ctx, user)
	if errors.Is(err, repository.ErrDuplicate) {
		// Lost a race with a concurrent register for the same email.
		return &RegisterResult{Inserted: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &RegisterResult{Inserted: true, ID: id}, nil
}

// GetByEmail returns the user stored under email.
// Returns repository.ErrNotFound if there is none.
func (s *UserService) GetByEmail(ctx context.Context, email string) (domain.Document, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

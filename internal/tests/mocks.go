// Package tests holds in-memory doubles shared by package tests.
package tests

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"parcel/internal/domain"
	"parcel/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK PARCEL REPOSITORY
// ──────────────────────────────────────────────

// MockParcelRepository is a mock implementation of ParcelRepository.
type MockParcelRepository struct {
	mu      sync.RWMutex
	parcels []domain.Document
	seq     int64

	// Counters for verification
	CreateCallCount int32
	ListCallCount   int32

	// Error injection
	CreateError error
	ListError   error
}

// NewMockParcelRepository creates a new mock parcel repository.
func NewMockParcelRepository() *MockParcelRepository {
	return &MockParcelRepository{}
}

func (m *MockParcelRepository) Create(ctx context.Context, parcel domain.Document) (string, error) {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return "", m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id := nextID(&m.seq)
	stored := copyDocument(parcel)
	stored[domain.FieldID] = id
	m.parcels = append(m.parcels, stored)
	return id, nil
}

// List orders by the string form of creation_date, which is enough for ISO dates.
func (m *MockParcelRepository) List(ctx context.Context, filter repository.ParcelFilter) ([]domain.Document, error) {
	atomic.AddInt32(&m.ListCallCount, 1)
	if m.ListError != nil {
		return nil, m.ListError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]domain.Document, 0, len(m.parcels))
	for _, p := range m.parcels {
		if filter.CreatorEmail != "" && p[domain.FieldCreatorEmail] != filter.CreatorEmail {
			continue
		}
		result = append(result, copyDocument(p))
	}
	sort.SliceStable(result, func(i, j int) bool {
		return fmt.Sprint(result[i][domain.FieldCreationDate]) > fmt.Sprint(result[j][domain.FieldCreationDate])
	})
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
// Unlike MongoDB without its index, it rejects duplicate emails.
type MockUserRepository struct {
	mu    sync.RWMutex
	users []domain.Document
	seq   int64

	// Counters for verification
	CreateCallCount     int32
	GetByEmailCallCount int32

	// Error injection
	CreateError     error
	GetByEmailError error
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user domain.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users = append(m.users, copyDocument(user))
}

func (m *MockUserRepository) Create(ctx context.Context, user domain.Document) (string, error) {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return "", m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u[domain.FieldEmail] == user[domain.FieldEmail] {
			return "", repository.ErrDuplicate
		}
	}
	id := nextID(&m.seq)
	stored := copyDocument(user)
	stored[domain.FieldID] = id
	m.users = append(m.users, stored)
	return id, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (domain.Document, error) {
	atomic.AddInt32(&m.GetByEmailCallCount, 1)
	if m.GetByEmailError != nil {
		return nil, m.GetByEmailError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u[domain.FieldEmail] == email {
			return copyDocument(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

// CountByEmail returns how many stored users carry email, for test assertions.
func (m *MockUserRepository) CountByEmail(email string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, u := range m.users {
		if u[domain.FieldEmail] == email {
			n++
		}
	}
	return n
}

// ──────────────────────────────────────────────
// MOCK RIDER REPOSITORY
// ──────────────────────────────────────────────

// MockRiderRepository is a mock implementation of RiderRepository.
type MockRiderRepository struct {
	mu     sync.RWMutex
	riders []domain.Document
	seq    int64

	// Counters for verification
	CreateCallCount int32

	// Error injection
	CreateError error
}

// NewMockRiderRepository creates a new mock rider repository.
func NewMockRiderRepository() *MockRiderRepository {
	return &MockRiderRepository{}
}

func (m *MockRiderRepository) Create(ctx context.Context, rider domain.Document) (*domain.InsertResult, error) {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return nil, m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id := nextID(&m.seq)
	stored := copyDocument(rider)
	stored[domain.FieldID] = id
	m.riders = append(m.riders, stored)
	return &domain.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// Count returns the number of stored riders.
func (m *MockRiderRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.riders)
}

// Ensure mocks implement interfaces.
var (
	_ repository.ParcelRepository = (*MockParcelRepository)(nil)
	_ repository.UserRepository   = (*MockUserRepository)(nil)
	_ repository.RiderRepository  = (*MockRiderRepository)(nil)
)

func nextID(seq *int64) string {
	return fmt.Sprintf("%024x", atomic.AddInt64(seq, 1))
}

func copyDocument(doc domain.Document) domain.Document {
	out := make(domain.Document, len(doc)+1)
	for k, v := range doc {
		out[k] = v
	}
	return out
}

package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parcel/internal/domain"
	"parcel/internal/repository"
	"parcel/internal/service"
	"parcel/internal/tests"
)

func TestUserRegister_TwiceIsIdempotent(t *testing.T) {
	t.Parallel()

	repo := tests.NewMockUserRepository()
	svc := service.NewUserService(repo)
	ctx := context.Background()

	first, err := svc.Register(ctx, domain.Document{"email": "a@x.com", "name": "A"})
	require.NoError(t, err)
	assert.True(t, first.Inserted)
	assert.NotEmpty(t, first.ID)

	second, err := svc.Register(ctx, domain.Document{"email": "a@x.com", "name": "A2"})
	require.NoError(t, err)
	assert.False(t, second.Inserted)
	assert.Empty(t, second.ID)

	assert.Equal(t, 1, repo.CountByEmail("a@x.com"))
	assert.EqualValues(t, 1, repo.CreateCallCount, "existing user must not trigger an insert")

	stored, err := svc.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "A", stored["name"], "existing user is left untouched")
}

func TestUserRegister_InvalidEmail(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		doc  domain.Document
	}{
		{name: "missing email", doc: domain.Document{"name": "A"}},
		{name: "empty email", doc: domain.Document{"email": ""}},
		{name: "non-string email", doc: domain.Document{"email": 42}},
		{name: "nil document", doc: nil},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := tests.NewMockUserRepository()
			svc := service.NewUserService(repo)

			_, err := svc.Register(context.Background(), tc.doc)
			assert.ErrorIs(t, err, service.ErrInvalidEmail)
			assert.Zero(t, repo.GetByEmailCallCount)
		})
	}
}

func TestUserRegister_LookupFailure(t *testing.T) {
	t.Parallel()

	repo := tests.NewMockUserRepository()
	repo.GetByEmailError = errors.New("timeout")
	svc := service.NewUserService(repo)

	_, err := svc.Register(context.Background(), domain.Document{"email": "a@x.com"})
	require.Error(t, err)
	assert.ErrorIs(t, err, repo.GetByEmailError)
	assert.Zero(t, repo.CreateCallCount, "no insert after a failed lookup")
}

func TestUserRegister_InsertFailure(t *testing.T) {
	t.Parallel()

	repo := tests.NewMockUserRepository()
	repo.CreateError = errors.New("write concern error")
	svc := service.NewUserService(repo)

	_, err := svc.Register(context.Background(), domain.Document{"email": "a@x.com"})
	assert.ErrorIs(t, err, repo.CreateError)
}

func TestUserRegister_DuplicateOnInsertReportsNotInserted(t *testing.T) {
	t.Parallel()

	repo := tests.NewMockUserRepository()
	repo.CreateError = repository.ErrDuplicate
	svc := service.NewUserService(repo)

	res, err := svc.Register(context.Background(), domain.Document{"email": "a@x.com"})
	require.NoError(t, err)
	assert.False(t, res.Inserted)
}

func TestUserRegister_Concurrent_SingleDocument(t *testing.T) {
	t.Parallel()

	repo := tests.NewMockUserRepository()
	svc := service.NewUserService(repo)

	const n = 20
	var wg sync.WaitGroup
	results := make([]*service.RegisterResult, n)
	errs := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Register(context.Background(), domain.Document{"email": "race@x.com"})
		}(i)
	}
	wg.Wait()

	inserted := 0
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		if results[i].Inserted {
			inserted++
		}
	}
	assert.Equal(t, 1, inserted)
	assert.Equal(t, 1, repo.CountByEmail("race@x.com"))
}

func TestUserGetByEmail(t *testing.T) {
	t.Parallel()

	repo := tests.NewMockUserRepository()
	repo.AddUser(domain.Document{"email": "a@x.com", "role": "customer"})
	svc := service.NewUserService(repo)
	ctx := context.Background()

	user, err := svc.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "customer", user["role"])

	_, err = svc.GetByEmail(ctx, "missing@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserGetByEmail_StorageFailure(t *testing.T) {
	t.Parallel()

	repo := tests.NewMockUserRepository()
	repo.GetByEmailError = errors.New("socket closed")
	svc := service.NewUserService(repo)

	_, err := svc.GetByEmail(context.Background(), "a@x.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
}

package testutil

import (
	"context"

	"github.com/billora/billora/internal/domain/user"
	ierr "github.com/billora/billora/internal/errors"
)

// InMemoryUserStore implements user.Repository
type InMemoryUserStore struct {
	*InMemoryStore[*user.User]
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		InMemoryStore: NewInMemoryStore[*user.User](),
	}
}

func copyUser(u *user.User) *user.User {
	if u == nil {
		return nil
	}
	cp := *u
	return &cp
}

func (s *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	if _, err := s.GetByEmail(ctx, u.Email); err == nil {
		return ierr.NewError("email already registered").
			WithHint("An account with this email already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	return s.InMemoryStore.Create(ctx, u.ID, copyUser(u))
}

func (s *InMemoryUserStore) Get(ctx context.Context, id string) (*user.User, error) {
	u, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.NewError("user not found").
			WithHint("User not found").
			Mark(ierr.ErrNotFound)
	}
	return copyUser(u), nil
}

func (s *InMemoryUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	users, err := s.InMemoryStore.List(ctx, nil, func(_ context.Context, u *user.User, _ interface{}) bool {
		return u.Email == email
	}, nil)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ierr.NewError("user not found").
			WithHint("User not found").
			Mark(ierr.ErrNotFound)
	}
	return copyUser(users[0]), nil
}

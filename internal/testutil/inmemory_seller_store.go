package testutil

import (
	"context"
	"strings"

	"github.com/billora/billora/internal/domain/seller"
	ierr "github.com/billora/billora/internal/errors"
	"github.com/billora/billora/internal/types"
	"github.com/samber/lo"
)

// InMemorySellerStore implements seller.Repository
type InMemorySellerStore struct {
	*InMemoryStore[*seller.Seller]
}

func NewInMemorySellerStore() *InMemorySellerStore {
	return &InMemorySellerStore{
		InMemoryStore: NewInMemoryStore[*seller.Seller](),
	}
}

func copySeller(sl *seller.Seller) *seller.Seller {
	if sl == nil {
		return nil
	}
	cp := *sl
	return &cp
}

func (s *InMemorySellerStore) Create(ctx context.Context, sl *seller.Seller) error {
	return s.InMemoryStore.Create(ctx, sl.ID, copySeller(sl))
}

func (s *InMemorySellerStore) Get(ctx context.Context, id string) (*seller.Seller, error) {
	sl, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || sl.OwnerID != types.GetUserID(ctx) {
		return nil, ierr.NewError("seller not found").
			WithHint("Seller not found").
			Mark(ierr.ErrNotFound)
	}
	return copySeller(sl), nil
}

func (s *InMemorySellerStore) Update(ctx context.Context, sl *seller.Seller) error {
	if _, err := s.Get(ctx, sl.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, sl.ID, copySeller(sl))
}

func (s *InMemorySellerStore) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemorySellerStore) List(ctx context.Context, search string) ([]*seller.Seller, error) {
	filterFn := func(ctx context.Context, sl *seller.Seller, _ interface{}) bool {
		if sl.OwnerID != types.GetUserID(ctx) {
			return false
		}
		return search == "" || strings.Contains(strings.ToLower(sl.BusinessName), strings.ToLower(search))
	}
	sortFn := func(a, b *seller.Seller) bool {
		if a.IsDefault != b.IsDefault {
			return a.IsDefault
		}
		return a.CreatedAt.After(b.CreatedAt)
	}

	sellers, err := s.InMemoryStore.List(ctx, nil, filterFn, sortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(sellers, func(sl *seller.Seller, _ int) *seller.Seller {
		return copySeller(sl)
	}), nil
}

func (s *InMemorySellerStore) Count(ctx context.Context) (int, error) {
	filterFn := func(ctx context.Context, sl *seller.Seller, _ interface{}) bool {
		return sl.OwnerID == types.GetUserID(ctx)
	}
	return s.InMemoryStore.Count(ctx, nil, filterFn)
}

func (s *InMemorySellerStore) GetDefault(ctx context.Context) (*seller.Seller, error) {
	sellers, err := s.List(ctx, "")
	if err != nil {
		return nil, err
	}
	if len(sellers) == 0 {
		return nil, ierr.NewError("no seller profile found").
			WithHint("Create a seller profile first").
			Mark(ierr.ErrNotFound)
	}
	// List already orders default-first then newest-first
	return sellers[0], nil
}

func (s *InMemorySellerStore) ClearDefault(ctx context.Context, exceptID string) error {
	sellers, err := s.List(ctx, "")
	if err != nil {
		return err
	}
	for _, sl := range sellers {
		if sl.ID == exceptID || !sl.IsDefault {
			continue
		}
		sl.IsDefault = false
		if err := s.InMemoryStore.Update(ctx, sl.ID, sl); err != nil {
			return err
		}
	}
	return nil
}

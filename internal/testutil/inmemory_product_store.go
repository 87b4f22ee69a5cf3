package testutil

import (
	"context"
	"strings"

	"github.com/billora/billora/internal/domain/product"
	ierr "github.com/billora/billora/internal/errors"
	"github.com/billora/billora/internal/types"
	"github.com/samber/lo"
)

// InMemoryProductStore implements product.Repository
type InMemoryProductStore struct {
	*InMemoryStore[*product.Product]
}

func NewInMemoryProductStore() *InMemoryProductStore {
	return &InMemoryProductStore{
		InMemoryStore: NewInMemoryStore[*product.Product](),
	}
}

func copyProduct(p *product.Product) *product.Product {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

func (s *InMemoryProductStore) Create(ctx context.Context, p *product.Product) error {
	return s.InMemoryStore.Create(ctx, p.ID, copyProduct(p))
}

func (s *InMemoryProductStore) Get(ctx context.Context, id string) (*product.Product, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || p.OwnerID != types.GetUserID(ctx) {
		return nil, ierr.NewError("product not found").
			WithHint("Product not found").
			Mark(ierr.ErrNotFound)
	}
	return copyProduct(p), nil
}

func (s *InMemoryProductStore) Update(ctx context.Context, p *product.Product) error {
	if _, err := s.Get(ctx, p.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, p.ID, copyProduct(p))
}

func (s *InMemoryProductStore) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryProductStore) List(ctx context.Context, search string) ([]*product.Product, error) {
	filterFn := func(ctx context.Context, p *product.Product, _ interface{}) bool {
		if p.OwnerID != types.GetUserID(ctx) {
			return false
		}
		return search == "" || strings.Contains(strings.ToLower(p.Name), strings.ToLower(search))
	}
	sortFn := func(a, b *product.Product) bool {
		return a.CreatedAt.After(b.CreatedAt)
	}

	products, err := s.InMemoryStore.List(ctx, nil, filterFn, sortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(products, func(p *product.Product, _ int) *product.Product {
		return copyProduct(p)
	}), nil
}

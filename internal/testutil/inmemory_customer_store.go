package testutil

import (
	"context"
	"strings"

	"github.com/billora/billora/internal/domain/customer"
	ierr "github.com/billora/billora/internal/errors"
	"github.com/billora/billora/internal/types"
	"github.com/samber/lo"
)

// InMemoryCustomerStore implements customer.Repository
type InMemoryCustomerStore struct {
	*InMemoryStore[*customer.Customer]
}

func NewInMemoryCustomerStore() *InMemoryCustomerStore {
	return &InMemoryCustomerStore{
		InMemoryStore: NewInMemoryStore[*customer.Customer](),
	}
}

func copyCustomer(c *customer.Customer) *customer.Customer {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func (s *InMemoryCustomerStore) Create(ctx context.Context, c *customer.Customer) error {
	return s.InMemoryStore.Create(ctx, c.ID, copyCustomer(c))
}

func (s *InMemoryCustomerStore) Get(ctx context.Context, id string) (*customer.Customer, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || c.OwnerID != types.GetUserID(ctx) {
		return nil, ierr.NewError("customer not found").
			WithHint("Customer not found").
			Mark(ierr.ErrNotFound)
	}
	return copyCustomer(c), nil
}

func (s *InMemoryCustomerStore) Update(ctx context.Context, c *customer.Customer) error {
	if _, err := s.Get(ctx, c.ID); err != nil {
		return err
	}
	return s.InMemoryStore.Update(ctx, c.ID, copyCustomer(c))
}

func (s *InMemoryCustomerStore) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryCustomerStore) List(ctx context.Context, search string) ([]*customer.Customer, error) {
	filterFn := func(ctx context.Context, c *customer.Customer, _ interface{}) bool {
		if c.OwnerID != types.GetUserID(ctx) {
			return false
		}
		return search == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(search))
	}
	sortFn := func(a, b *customer.Customer) bool {
		return a.CreatedAt.After(b.CreatedAt)
	}

	customers, err := s.InMemoryStore.List(ctx, nil, filterFn, sortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(customers, func(c *customer.Customer, _ int) *customer.Customer {
		return copyCustomer(c)
	}), nil
}

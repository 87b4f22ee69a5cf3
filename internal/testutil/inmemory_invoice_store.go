package testutil

import (
	"context"
	"time"

	"github.com/billora/billora/internal/domain/invoice"
	ierr "github.com/billora/billora/internal/errors"
	"github.com/billora/billora/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// InMemoryInvoiceStore implements invoice.Repository, including the
// (owner, invoice number) uniqueness and version checks the Mongo
// repository enforces.
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.Invoice](),
	}
}

func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	if inv == nil {
		return nil
	}
	cp := *inv
	cp.Items = make([]invoice.LineItem, len(inv.Items))
	copy(cp.Items, inv.Items)
	if inv.SellerDetails != nil {
		snapshot := *inv.SellerDetails
		cp.SellerDetails = &snapshot
	}
	return &cp
}

func invoiceNotFound() error {
	return ierr.NewError("invoice not found").
		WithHint("Invoice not found").
		Mark(ierr.ErrNotFound)
}

// numberInUse reports whether another invoice of the same owner already
// carries the given invoice number.
func (s *InMemoryInvoiceStore) numberInUse(ctx context.Context, invoiceNumber, excludeID string) bool {
	existing, err := s.GetByInvoiceNumber(ctx, invoiceNumber)
	return err == nil && existing.ID != excludeID
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	if s.numberInUse(ctx, inv.InvoiceNumber, inv.ID) {
		return ierr.NewError("duplicate invoice number").
			WithHintf("Invoice number %s is already in use", inv.InvoiceNumber).
			Mark(ierr.ErrAlreadyExists)
	}
	return s.InMemoryStore.Create(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil || inv.OwnerID != types.GetUserID(ctx) {
		return nil, invoiceNotFound()
	}
	return copyInvoice(inv), nil
}

func (s *InMemoryInvoiceStore) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*invoice.Invoice, error) {
	invoices, err := s.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, inv := range invoices {
		if inv.InvoiceNumber == invoiceNumber {
			return inv, nil
		}
	}
	return nil, invoiceNotFound()
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	stored, err := s.Get(ctx, inv.ID)
	if err != nil {
		return err
	}
	if stored.Version != inv.Version {
		return ierr.NewError("invoice was modified concurrently").
			WithHint("The invoice was changed by another request; reload and retry").
			Mark(ierr.ErrVersionConflict)
	}
	if s.numberInUse(ctx, inv.InvoiceNumber, inv.ID) {
		return ierr.NewError("duplicate invoice number").
			WithHintf("Invoice number %s is already in use", inv.InvoiceNumber).
			Mark(ierr.ErrAlreadyExists)
	}

	next := copyInvoice(inv)
	next.Version = inv.Version + 1
	next.UpdatedAt = time.Now().UTC()
	if err := s.InMemoryStore.Update(ctx, inv.ID, next); err != nil {
		return err
	}

	inv.Version = next.Version
	inv.UpdatedAt = next.UpdatedAt
	return nil
}

func (s *InMemoryInvoiceStore) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.InMemoryStore.Delete(ctx, id)
}

func (s *InMemoryInvoiceStore) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	filterFn := func(ctx context.Context, inv *invoice.Invoice, _ interface{}) bool {
		if inv.OwnerID != types.GetUserID(ctx) {
			return false
		}
		return filter == nil || filter.Status == nil || inv.Status == *filter.Status
	}
	sortFn := func(a, b *invoice.Invoice) bool {
		return a.InvoiceDate.After(b.InvoiceDate)
	}

	invoices, err := s.InMemoryStore.List(ctx, nil, filterFn, sortFn)
	if err != nil {
		return nil, err
	}
	if limit := filter.GetLimit(); limit > 0 && len(invoices) > limit {
		invoices = invoices[:limit]
	}
	return lo.Map(invoices, func(inv *invoice.Invoice, _ int) *invoice.Invoice {
		return copyInvoice(inv)
	}), nil
}

func (s *InMemoryInvoiceStore) Count(ctx context.Context) (int, error) {
	filterFn := func(ctx context.Context, inv *invoice.Invoice, _ interface{}) bool {
		return inv.OwnerID == types.GetUserID(ctx)
	}
	return s.InMemoryStore.Count(ctx, nil, filterFn)
}

func (s *InMemoryInvoiceStore) SumTotals(ctx context.Context, query invoice.TotalsQuery) (invoice.TotalsAggregate, error) {
	invoices, err := s.List(ctx, nil)
	if err != nil {
		return invoice.TotalsAggregate{}, err
	}

	agg := invoice.TotalsAggregate{
		GrandTotal: decimal.Zero,
		TotalGST:   decimal.Zero,
	}
	for _, inv := range invoices {
		if query.Status != nil && inv.Status != *query.Status {
			continue
		}
		if query.From != nil && inv.InvoiceDate.Before(*query.From) {
			continue
		}
		if query.To != nil && inv.InvoiceDate.After(*query.To) {
			continue
		}
		agg.GrandTotal = agg.GrandTotal.Add(inv.GrandTotal)
		agg.TotalGST = agg.TotalGST.Add(inv.TotalGST)
	}
	return agg, nil
}

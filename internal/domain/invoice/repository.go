package invoice

import (
	"context"
	"time"

	"github.com/billora/billora/internal/types"
	"github.com/shopspring/decimal"
)

// TotalsQuery selects the invoices whose persisted totals are aggregated
// by SumTotals. A nil field means "no constraint".
type TotalsQuery struct {
	Status *types.InvoiceStatus
	From   *time.Time
	To     *time.Time
}

// TotalsAggregate is the result of a SumTotals aggregation. It is a pure
// aggregation over persisted totals, reflecting each invoice's totals at
// last save time; items are never re-read.
type TotalsAggregate struct {
	GrandTotal decimal.Decimal
	TotalGST   decimal.Decimal
}

// Repository defines the interface for invoice persistence operations.
// All operations are implicitly scoped to the owner in the context.
type Repository interface {
	// Create creates a new invoice; a duplicate (owner, invoice number)
	// pair fails with ErrAlreadyExists
	Create(ctx context.Context, invoice *Invoice) error

	// Get retrieves an invoice by ID
	Get(ctx context.Context, id string) (*Invoice, error)

	// GetByInvoiceNumber retrieves an invoice by its owner-unique number
	GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)

	// Update replaces the invoice document if the stored version matches
	// invoice.Version, then increments it; a mismatch fails with
	// ErrVersionConflict
	Update(ctx context.Context, invoice *Invoice) error

	// Delete hard-deletes an invoice
	Delete(ctx context.Context, id string) error

	// List retrieves invoices sorted by invoice date descending
	List(ctx context.Context, filter *types.InvoiceFilter) ([]*Invoice, error)

	// Count returns the total number of the owner's invoices
	Count(ctx context.Context) (int, error)

	// SumTotals aggregates persisted grand totals and GST totals over the
	// invoices matching the query
	SumTotals(ctx context.Context, query TotalsQuery) (TotalsAggregate, error)
}

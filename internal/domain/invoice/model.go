package invoice

import (
	"time"

	ierr "github.com/billora/billora/internal/errors"
	"github.com/billora/billora/internal/types"
	"github.com/shopspring/decimal"
)

// SellerSnapshot is a copy of the seller's details embedded into the invoice
// at creation/edit time. Later edits to the seller record do not change it.
type SellerSnapshot struct {
	BusinessName string  `json:"business_name"`
	Address      *string `json:"address,omitempty"`
	GSTIN        *string `json:"gstin,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	Email        *string `json:"email,omitempty"`
}

// Invoice represents the invoice domain model. Subtotal, TotalGST and
// GrandTotal are always derived from Items via ComputeTotals and never
// trusted from the caller.
type Invoice struct {
	ID              string              `json:"id"`
	InvoiceNumber   string              `json:"invoice_number"`
	CustomerID      *string             `json:"customer_id,omitempty"`
	CustomerName    string              `json:"customer_name"`
	CustomerEmail   *string             `json:"customer_email,omitempty"`
	CustomerPhone   *string             `json:"customer_phone,omitempty"`
	CustomerAddress *string             `json:"customer_address,omitempty"`
	CustomerGSTIN   *string             `json:"customer_gstin,omitempty"`
	SellerDetails   *SellerSnapshot     `json:"seller_details,omitempty"`
	Items           []LineItem          `json:"items"`
	Subtotal        decimal.Decimal     `json:"subtotal"`
	TotalGST        decimal.Decimal     `json:"total_gst"`
	GrandTotal      decimal.Decimal     `json:"grand_total"`
	InvoiceDate     time.Time           `json:"invoice_date"`
	DueDate         *time.Time          `json:"due_date,omitempty"`
	Status          types.InvoiceStatus `json:"status"`
	Notes           *string             `json:"notes,omitempty"`
	CustomField     *string             `json:"custom_field,omitempty"`
	Version         int                 `json:"version"`
	types.BaseModel
}

// Validate checks the invoice invariants before persistence
func (i *Invoice) Validate() error {
	if i.InvoiceNumber == "" {
		return ierr.NewError("invoice number is required").
			WithHint("Invoice number is required").
			Mark(ierr.ErrValidation)
	}

	if i.CustomerName == "" {
		return ierr.NewError("customer name is required").
			WithHint("Customer name is required").
			Mark(ierr.ErrValidation)
	}

	if err := i.Status.Validate(); err != nil {
		return err
	}

	// only a draft may have an empty item list
	if len(i.Items) == 0 && i.Status != types.InvoiceStatusDraft {
		return ierr.NewError("invoice has no items").
			WithHintf("An invoice must have at least one item before it can be %s", i.Status).
			Mark(ierr.ErrValidation)
	}

	for idx := range i.Items {
		if err := i.Items[idx].Validate(); err != nil {
			return err
		}
	}

	if i.DueDate != nil && i.DueDate.Before(i.InvoiceDate) {
		return ierr.NewError("due date before invoice date").
			WithHint("Due date must be on or after the invoice date").
			Mark(ierr.ErrValidation)
	}

	if !i.GrandTotal.Equal(i.Subtotal.Add(i.TotalGST)) {
		return ierr.NewError("inconsistent invoice totals").
			WithHint("Grand total must equal subtotal plus total GST").
			Mark(ierr.ErrValidation)
	}

	return nil
}

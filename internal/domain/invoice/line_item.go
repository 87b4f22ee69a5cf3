package invoice

import (
	ierr "github.com/billora/billora/internal/errors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineItem represents a single line item in an invoice
type LineItem struct {
	ProductID  *string         `json:"product_id,omitempty"`
	Name       string          `json:"name"`
	Quantity   int64           `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"price"`
	GSTPercent decimal.Decimal `json:"gst"`
	HSNCode    *string         `json:"hsn_code,omitempty"`
	// LineTotal is derived: quantity * price * (1 + gst/100)
	LineTotal decimal.Decimal `json:"total"`
}

// Subtotal returns quantity * unit price, before GST
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(li.Quantity))
}

// GSTAmount returns the GST portion of the line
func (li LineItem) GSTAmount() decimal.Decimal {
	return li.Subtotal().Mul(li.GSTPercent).Div(hundred)
}

// Validate validates the invoice line item
func (li LineItem) Validate() error {
	if li.Name == "" {
		return ierr.NewError("line item validation failed").
			WithHint("Item name is required").
			Mark(ierr.ErrValidation)
	}

	if li.Quantity < 1 {
		return ierr.NewError("line item validation failed").
			WithHintf("Quantity for %q must be a positive integer", li.Name).
			Mark(ierr.ErrValidation)
	}

	if li.UnitPrice.IsNegative() {
		return ierr.NewError("line item validation failed").
			WithHintf("Price for %q must be non negative", li.Name).
			Mark(ierr.ErrValidation)
	}

	if li.GSTPercent.IsNegative() || li.GSTPercent.GreaterThan(hundred) {
		return ierr.NewError("line item validation failed").
			WithHintf("GST percent for %q must be between 0 and 100", li.Name).
			Mark(ierr.ErrValidation)
	}

	return nil
}

// Totals holds the invoice-level monetary aggregates derived from line items
type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	TotalGST   decimal.Decimal `json:"total_gst"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// ComputeTotals derives the invoice totals from the given line items and
// returns the items annotated with their computed line totals. It is a pure
// function of its input: stored totals are never read and caller-supplied
// totals are never trusted. Full decimal precision is kept throughout;
// rounding happens only at the display boundary.
//
// An empty item list yields all-zero totals, which is valid for a draft.
func ComputeTotals(items []LineItem) ([]LineItem, Totals) {
	totals := Totals{
		Subtotal:   decimal.Zero,
		TotalGST:   decimal.Zero,
		GrandTotal: decimal.Zero,
	}

	out := make([]LineItem, len(items))
	for i, item := range items {
		itemSubtotal := item.Subtotal()
		itemGST := item.GSTAmount()
		item.LineTotal = itemSubtotal.Add(itemGST)
		out[i] = item

		totals.Subtotal = totals.Subtotal.Add(itemSubtotal)
		totals.TotalGST = totals.TotalGST.Add(itemGST)
	}

	totals.GrandTotal = totals.Subtotal.Add(totals.TotalGST)
	return out, totals
}

package product

import (
	ierr "github.com/billora/billora/internal/errors"
	"github.com/billora/billora/internal/types"
	"github.com/shopspring/decimal"
)

// Product is a reusable catalog entry; invoices copy its price and GST rate
// into line items instead of referencing it live.
type Product struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	GSTPercent decimal.Decimal `json:"gst"`
	HSNCode    *string         `json:"hsn_code,omitempty"`
	Category   *string         `json:"category,omitempty"`
	types.BaseModel
}

func (p *Product) Validate() error {
	if p.Name == "" {
		return ierr.NewError("product name is required").
			WithHint("Product name is required").
			Mark(ierr.ErrValidation)
	}

	if p.Price.IsNegative() {
		return ierr.NewError("invalid product price").
			WithHint("Price must be non negative").
			Mark(ierr.ErrValidation)
	}

	if p.GSTPercent.IsNegative() || p.GSTPercent.GreaterThan(decimal.NewFromInt(100)) {
		return ierr.NewError("invalid product gst").
			WithHint("GST percent must be between 0 and 100").
			Mark(ierr.ErrValidation)
	}

	return nil
}

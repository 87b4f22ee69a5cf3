package customer

import (
	ierr "github.com/billora/billora/internal/errors"
	"github.com/billora/billora/internal/types"
)

// Customer represents a buyer the owner invoices. Invoices embed a snapshot
// of these fields at creation time rather than a live reference.
type Customer struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	GSTIN   *string `json:"gstin,omitempty"`
	types.BaseModel
}

func (c *Customer) Validate() error {
	if c.Name == "" {
		return ierr.NewError("customer name is required").
			WithHint("Customer name is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

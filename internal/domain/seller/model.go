package seller

import (
	ierr "github.com/billora/billora/internal/errors"
	"github.com/billora/billora/internal/types"
)

// Seller is a business profile the owner issues invoices from. At most one
// seller per owner carries IsDefault; new invoices snapshot the default
// seller's details when none are supplied explicitly.
type Seller struct {
	ID            string  `json:"id"`
	BusinessName  string  `json:"business_name"`
	Address       *string `json:"address,omitempty"`
	City          *string `json:"city,omitempty"`
	State         *string `json:"state,omitempty"`
	Pincode       *string `json:"pincode,omitempty"`
	GSTIN         *string `json:"gstin,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Email         *string `json:"email,omitempty"`
	Logo          *string `json:"logo,omitempty"`
	BankName      *string `json:"bank_name,omitempty"`
	AccountNumber *string `json:"account_number,omitempty"`
	IFSCCode      *string `json:"ifsc_code,omitempty"`
	IsDefault     bool    `json:"is_default"`
	CustomField   *string `json:"custom_field,omitempty"`
	types.BaseModel
}

func (s *Seller) Validate() error {
	if s.BusinessName == "" {
		return ierr.NewError("business name is required").
			WithHint("Business name is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

package dto

import (
	"context"

	"github.com/billora/billora/internal/domain/seller"
	"github.com/billora/billora/internal/types"
	"github.com/billora/billora/internal/validator"
)

type CreateSellerRequest struct {
	BusinessName  string  `json:"business_name" validate:"required,max=255"`
	Address       *string `json:"address" validate:"omitempty,max=500"`
	City          *string `json:"city" validate:"omitempty,max=100"`
	State         *string `json:"state" validate:"omitempty,max=100"`
	Pincode       *string `json:"pincode" validate:"omitempty,max=10"`
	GSTIN         *string `json:"gstin" validate:"omitempty,max=15"`
	Phone         *string `json:"phone" validate:"omitempty,max=20"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Logo          *string `json:"logo"`
	BankName      *string `json:"bank_name" validate:"omitempty,max=255"`
	AccountNumber *string `json:"account_number" validate:"omitempty,max=34"`
	IFSCCode      *string `json:"ifsc_code" validate:"omitempty,max=11"`
	IsDefault     *bool   `json:"is_default"`
	CustomField   *string `json:"custom_field" validate:"omitempty,max=500"`
}

func (r *CreateSellerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateSellerRequest) ToSeller(ctx context.Context) *seller.Seller {
	s := &seller.Seller{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SELLER),
		BusinessName:  r.BusinessName,
		Address:       r.Address,
		City:          r.City,
		State:         r.State,
		Pincode:       r.Pincode,
		GSTIN:         r.GSTIN,
		Phone:         r.Phone,
		Email:         r.Email,
		Logo:          r.Logo,
		BankName:      r.BankName,
		AccountNumber: r.AccountNumber,
		IFSCCode:      r.IFSCCode,
		CustomField:   r.CustomField,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}
	if r.IsDefault != nil {
		s.IsDefault = *r.IsDefault
	}
	return s
}

type UpdateSellerRequest struct {
	BusinessName  *string `json:"business_name" validate:"omitempty,max=255"`
	Address       *string `json:"address" validate:"omitempty,max=500"`
	City          *string `json:"city" validate:"omitempty,max=100"`
	State         *string `json:"state" validate:"omitempty,max=100"`
	Pincode       *string `json:"pincode" validate:"omitempty,max=10"`
	GSTIN         *string `json:"gstin" validate:"omitempty,max=15"`
	Phone         *string `json:"phone" validate:"omitempty,max=20"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Logo          *string `json:"logo"`
	BankName      *string `json:"bank_name" validate:"omitempty,max=255"`
	AccountNumber *string `json:"account_number" validate:"omitempty,max=34"`
	IFSCCode      *string `json:"ifsc_code" validate:"omitempty,max=11"`
	IsDefault     *bool   `json:"is_default"`
	CustomField   *string `json:"custom_field" validate:"omitempty,max=500"`
}

func (r *UpdateSellerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Apply copies the set fields onto the seller, leaving the rest untouched
func (r *UpdateSellerRequest) Apply(s *seller.Seller) {
	if r.BusinessName != nil {
		s.BusinessName = *r.BusinessName
	}
	if r.Address != nil {
		s.Address = r.Address
	}
	if r.City != nil {
		s.City = r.City
	}
	if r.State != nil {
		s.State = r.State
	}
	if r.Pincode != nil {
		s.Pincode = r.Pincode
	}
	if r.GSTIN != nil {
		s.GSTIN = r.GSTIN
	}
	if r.Phone != nil {
		s.Phone = r.Phone
	}
	if r.Email != nil {
		s.Email = r.Email
	}
	if r.Logo != nil {
		s.Logo = r.Logo
	}
	if r.BankName != nil {
		s.BankName = r.BankName
	}
	if r.AccountNumber != nil {
		s.AccountNumber = r.AccountNumber
	}
	if r.IFSCCode != nil {
		s.IFSCCode = r.IFSCCode
	}
	if r.IsDefault != nil {
		s.IsDefault = *r.IsDefault
	}
	if r.CustomField != nil {
		s.CustomField = r.CustomField
	}
}

type SellerResponse struct {
	*seller.Seller
}

// ListSellersResponse represents the response for listing sellers
type ListSellersResponse = types.ListResponse[*SellerResponse]

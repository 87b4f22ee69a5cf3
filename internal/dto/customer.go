package dto

import (
	"context"

	"github.com/billora/billora/internal/domain/customer"
	"github.com/billora/billora/internal/types"
	"github.com/billora/billora/internal/validator"
)

type CreateCustomerRequest struct {
	Name    string  `json:"name" validate:"required,max=255"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=20"`
	Address *string `json:"address" validate:"omitempty,max=500"`
	GSTIN   *string `json:"gstin" validate:"omitempty,max=15"`
}

func (r *CreateCustomerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateCustomerRequest) ToCustomer(ctx context.Context) *customer.Customer {
	return &customer.Customer{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Address:   r.Address,
		GSTIN:     r.GSTIN,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=255"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=20"`
	Address *string `json:"address" validate:"omitempty,max=500"`
	GSTIN   *string `json:"gstin" validate:"omitempty,max=15"`
}

func (r *UpdateCustomerRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Apply copies the set fields onto the customer, leaving the rest untouched
func (r *UpdateCustomerRequest) Apply(c *customer.Customer) {
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Email != nil {
		c.Email = r.Email
	}
	if r.Phone != nil {
		c.Phone = r.Phone
	}
	if r.Address != nil {
		c.Address = r.Address
	}
	if r.GSTIN != nil {
		c.GSTIN = r.GSTIN
	}
}

type CustomerResponse struct {
	*customer.Customer
}

// ListCustomersResponse represents the response for listing customers
type ListCustomersResponse = types.ListResponse[*CustomerResponse]

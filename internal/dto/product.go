package dto

import (
	"context"

	"github.com/billora/billora/internal/domain/product"
	"github.com/billora/billora/internal/types"
	"github.com/billora/billora/internal/validator"
	"github.com/shopspring/decimal"
)

type CreateProductRequest struct {
	Name       string          `json:"name" validate:"required,max=255"`
	Price      decimal.Decimal `json:"price"`
	GSTPercent decimal.Decimal `json:"gst"`
	HSNCode    *string         `json:"hsn_code" validate:"omitempty,max=20"`
	Category   *string         `json:"category" validate:"omitempty,max=100"`
}

func (r *CreateProductRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateProductRequest) ToProduct(ctx context.Context) *product.Product {
	return &product.Product{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PRODUCT),
		Name:       r.Name,
		Price:      r.Price,
		GSTPercent: r.GSTPercent,
		HSNCode:    r.HSNCode,
		Category:   r.Category,
		BaseModel:  types.GetDefaultBaseModel(ctx),
	}
}

type UpdateProductRequest struct {
	Name       *string          `json:"name" validate:"omitempty,max=255"`
	Price      *decimal.Decimal `json:"price"`
	GSTPercent *decimal.Decimal `json:"gst"`
	HSNCode    *string          `json:"hsn_code" validate:"omitempty,max=20"`
	Category   *string          `json:"category" validate:"omitempty,max=100"`
}

func (r *UpdateProductRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Apply copies the set fields onto the product, leaving the rest untouched
func (r *UpdateProductRequest) Apply(p *product.Product) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.GSTPercent != nil {
		p.GSTPercent = *r.GSTPercent
	}
	if r.HSNCode != nil {
		p.HSNCode = r.HSNCode
	}
	if r.Category != nil {
		p.Category = r.Category
	}
}

type ProductResponse struct {
	*product.Product
}

// ListProductsResponse represents the response for listing products
type ListProductsResponse = types.ListResponse[*ProductResponse]

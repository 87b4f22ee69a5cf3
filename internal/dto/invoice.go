package dto

import (
	"context"
	"time"

	"github.com/billora/billora/internal/domain/invoice"
	"github.com/billora/billora/internal/types"
	"github.com/billora/billora/internal/validator"
	"github.com/shopspring/decimal"
)

// LineItemRequest is a line item as submitted by the caller. The total is
// intentionally absent: line and invoice totals are always recomputed
// server-side from quantity, price and gst.
type LineItemRequest struct {
	ProductID  *string         `json:"product_id"`
	Name       string          `json:"name" validate:"required,max=255"`
	Quantity   int64           `json:"quantity" validate:"required,min=1"`
	UnitPrice  decimal.Decimal `json:"price"`
	GSTPercent decimal.Decimal `json:"gst"`
	HSNCode    *string         `json:"hsn_code" validate:"omitempty,max=20"`
}

func (r LineItemRequest) toLineItem() invoice.LineItem {
	return invoice.LineItem{
		ProductID:  r.ProductID,
		Name:       r.Name,
		Quantity:   r.Quantity,
		UnitPrice:  r.UnitPrice,
		GSTPercent: r.GSTPercent,
		HSNCode:    r.HSNCode,
	}
}

// SellerSnapshotRequest lets the caller override the seller block that gets
// embedded into the invoice instead of snapshotting the default seller.
type SellerSnapshotRequest struct {
	BusinessName string  `json:"business_name" validate:"required,max=255"`
	Address      *string `json:"address" validate:"omitempty,max=500"`
	GSTIN        *string `json:"gstin" validate:"omitempty,max=15"`
	Phone        *string `json:"phone" validate:"omitempty,max=20"`
	Email        *string `json:"email" validate:"omitempty,email"`
}

func (r *SellerSnapshotRequest) toSnapshot() *invoice.SellerSnapshot {
	if r == nil {
		return nil
	}
	return &invoice.SellerSnapshot{
		BusinessName: r.BusinessName,
		Address:      r.Address,
		GSTIN:        r.GSTIN,
		Phone:        r.Phone,
		Email:        r.Email,
	}
}

type CreateInvoiceRequest struct {
	InvoiceNumber   string                 `json:"invoice_number" validate:"required,max=50"`
	CustomerID      *string                `json:"customer_id"`
	CustomerName    string                 `json:"customer_name" validate:"required,max=255"`
	CustomerEmail   *string                `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone   *string                `json:"customer_phone" validate:"omitempty,max=20"`
	CustomerAddress *string                `json:"customer_address" validate:"omitempty,max=500"`
	CustomerGSTIN   *string                `json:"customer_gstin" validate:"omitempty,max=15"`
	SellerDetails   *SellerSnapshotRequest `json:"seller_details"`
	Items           []LineItemRequest      `json:"items" validate:"dive"`
	InvoiceDate     *time.Time             `json:"invoice_date"`
	DueDate         *time.Time             `json:"due_date"`
	Status          *types.InvoiceStatus   `json:"status"`
	Notes           *string                `json:"notes" validate:"omitempty,max=2000"`
	CustomField     *string                `json:"custom_field" validate:"omitempty,max=500"`
}

func (r *CreateInvoiceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Status != nil {
		return r.Status.Validate()
	}
	return nil
}

// ToInvoice builds the domain invoice with totals derived from the items.
// Any totals supplied by the caller are discarded.
func (r *CreateInvoiceRequest) ToInvoice(ctx context.Context) *invoice.Invoice {
	items := make([]invoice.LineItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = item.toLineItem()
	}
	items, totals := invoice.ComputeTotals(items)

	status := types.InvoiceStatusDraft
	if r.Status != nil {
		status = *r.Status
	}

	invoiceDate := time.Now().UTC()
	if r.InvoiceDate != nil {
		invoiceDate = *r.InvoiceDate
	}

	return &invoice.Invoice{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		InvoiceNumber:   r.InvoiceNumber,
		CustomerID:      r.CustomerID,
		CustomerName:    r.CustomerName,
		CustomerEmail:   r.CustomerEmail,
		CustomerPhone:   r.CustomerPhone,
		CustomerAddress: r.CustomerAddress,
		CustomerGSTIN:   r.CustomerGSTIN,
		SellerDetails:   r.SellerDetails.toSnapshot(),
		Items:           items,
		Subtotal:        totals.Subtotal,
		TotalGST:        totals.TotalGST,
		GrandTotal:      totals.GrandTotal,
		InvoiceDate:     invoiceDate,
		DueDate:         r.DueDate,
		Status:          status,
		Notes:           r.Notes,
		CustomField:     r.CustomField,
		Version:         1,
		BaseModel:       types.GetDefaultBaseModel(ctx),
	}
}

// UpdateInvoiceRequest is a partial update; nil fields are left untouched.
// When Items is set the invoice totals are recomputed from it.
type UpdateInvoiceRequest struct {
	InvoiceNumber   *string                `json:"invoice_number" validate:"omitempty,max=50"`
	CustomerID      *string                `json:"customer_id"`
	CustomerName    *string                `json:"customer_name" validate:"omitempty,max=255"`
	CustomerEmail   *string                `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone   *string                `json:"customer_phone" validate:"omitempty,max=20"`
	CustomerAddress *string                `json:"customer_address" validate:"omitempty,max=500"`
	CustomerGSTIN   *string                `json:"customer_gstin" validate:"omitempty,max=15"`
	SellerDetails   *SellerSnapshotRequest `json:"seller_details"`
	Items           *[]LineItemRequest     `json:"items" validate:"omitempty,dive"`
	InvoiceDate     *time.Time             `json:"invoice_date"`
	DueDate         *time.Time             `json:"due_date"`
	Status          *types.InvoiceStatus   `json:"status"`
	Notes           *string                `json:"notes" validate:"omitempty,max=2000"`
	CustomField     *string                `json:"custom_field" validate:"omitempty,max=500"`

	// Version, when set, must match the stored invoice version; a mismatch
	// fails with a version conflict instead of silently overwriting a
	// concurrent edit. When unset the update applies to the latest version.
	Version *int `json:"version" validate:"omitempty,min=1"`
}

func (r *UpdateInvoiceRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Status != nil {
		return r.Status.Validate()
	}
	return nil
}

// Apply copies the set fields onto the invoice and recomputes totals when
// the item list changed. Status transitions are checked by the service.
func (r *UpdateInvoiceRequest) Apply(inv *invoice.Invoice) {
	if r.InvoiceNumber != nil {
		inv.InvoiceNumber = *r.InvoiceNumber
	}
	if r.CustomerID != nil {
		inv.CustomerID = r.CustomerID
	}
	if r.CustomerName != nil {
		inv.CustomerName = *r.CustomerName
	}
	if r.CustomerEmail != nil {
		inv.CustomerEmail = r.CustomerEmail
	}
	if r.CustomerPhone != nil {
		inv.CustomerPhone = r.CustomerPhone
	}
	if r.CustomerAddress != nil {
		inv.CustomerAddress = r.CustomerAddress
	}
	if r.CustomerGSTIN != nil {
		inv.CustomerGSTIN = r.CustomerGSTIN
	}
	if r.SellerDetails != nil {
		inv.SellerDetails = r.SellerDetails.toSnapshot()
	}
	if r.Items != nil {
		items := make([]invoice.LineItem, len(*r.Items))
		for i, item := range *r.Items {
			items[i] = item.toLineItem()
		}
		items, totals := invoice.ComputeTotals(items)
		inv.Items = items
		inv.Subtotal = totals.Subtotal
		inv.TotalGST = totals.TotalGST
		inv.GrandTotal = totals.GrandTotal
	}
	if r.InvoiceDate != nil {
		inv.InvoiceDate = *r.InvoiceDate
	}
	if r.DueDate != nil {
		inv.DueDate = r.DueDate
	}
	if r.Status != nil {
		inv.Status = *r.Status
	}
	if r.Notes != nil {
		inv.Notes = r.Notes
	}
	if r.CustomField != nil {
		inv.CustomField = r.CustomField
	}
}

type InvoiceResponse struct {
	*invoice.Invoice
}

// ListInvoicesResponse represents the response for listing invoices
type ListInvoicesResponse = types.ListResponse[*InvoiceResponse]

// SuggestInvoiceNumberResponse carries a generated invoice number that is
// not currently in use by the owner
type SuggestInvoiceNumberResponse struct {
	InvoiceNumber string `json:"invoice_number"`
}

package dto

import (
	"github.com/billora/billora/internal/validator"
	"github.com/shopspring/decimal"
)

type FillInvoiceRequest struct {
	Text string `json:"text" validate:"required"`
}

func (r *FillInvoiceRequest) Validate() error {
	return validator.ValidateRequest(r)
}

type ReadInvoiceRequest struct {
	OCRText string `json:"ocr_text" validate:"required"`
}

func (r *ReadInvoiceRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ExtractedBuyer is the customer block returned by extraction.
// NeedsNewCustomer is true when no stored customer matched by name.
type ExtractedBuyer struct {
	Name             string  `json:"name"`
	Email            *string `json:"email"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
	GSTIN            *string `json:"gstin"`
	NeedsNewCustomer bool    `json:"needs_new_customer"`
}

// ExtractedProduct is a line item candidate. Total is advisory only and is
// re-derived when the invoice is actually created.
type ExtractedProduct struct {
	Name     string           `json:"name"`
	Quantity int64            `json:"quantity"`
	Price    decimal.Decimal  `json:"price"`
	GST      decimal.Decimal  `json:"gst"`
	Total    *decimal.Decimal `json:"total,omitempty"`
	HSNCode  *string          `json:"hsn_code"`
}

// ExtractedInvoiceHeader holds the invoice level fields extraction found
type ExtractedInvoiceHeader struct {
	InvoiceNumber *string `json:"invoice_number,omitempty"`
	Date          *string `json:"date"`
	DueDate       *string `json:"due_date,omitempty"`
	Notes         *string `json:"notes"`
}

// ExtractedSeller is the seller block read off an OCR'd invoice
type ExtractedSeller struct {
	BusinessName *string `json:"business_name"`
	Address      *string `json:"address"`
	GSTIN        *string `json:"gstin"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
}

// ExtractedTotals are the totals as printed on the source document; they
// are never trusted for persistence.
type ExtractedTotals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	TotalGST   decimal.Decimal `json:"total_gst"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

// FillInvoiceResponse is the structured form of free text, post-matched
// against the owner's stored customers and products.
type FillInvoiceResponse struct {
	Buyer    ExtractedBuyer         `json:"buyer"`
	Products []ExtractedProduct     `json:"products"`
	Invoice  ExtractedInvoiceHeader `json:"invoice"`
}

// ReadInvoiceResponse is the structured form of OCR text from an existing
// invoice document.
type ReadInvoiceResponse struct {
	Seller   ExtractedSeller        `json:"seller"`
	Buyer    ExtractedBuyer         `json:"buyer"`
	Invoice  ExtractedInvoiceHeader `json:"invoice"`
	Products []ExtractedProduct     `json:"products"`
	Totals   *ExtractedTotals       `json:"totals,omitempty"`
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/billora/billora/internal/domain/customer"
	"github.com/billora/billora/internal/domain/product"
	"github.com/billora/billora/internal/dto"
	ierr "github.com/billora/billora/internal/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ExtractionService turns unstructured text into invoice field candidates.
// Its output always re-enters through invoice create/update validation, so
// nothing it returns is trusted for persistence.
type ExtractionService interface {
	// FillInvoice extracts buyer, products and invoice header fields from
	// free text, using the owner's stored customers and products as context
	FillInvoice(ctx context.Context, req dto.FillInvoiceRequest) (*dto.FillInvoiceResponse, error)

	// ReadInvoice extracts the full structure of an existing invoice from
	// its OCR text
	ReadInvoice(ctx context.Context, req dto.ReadInvoiceRequest) (*dto.ReadInvoiceResponse, error)
}

type extractionService struct {
	ServiceParams
}

func NewExtractionService(params ServiceParams) ExtractionService {
	return &extractionService{
		ServiceParams: params,
	}
}

const fillInvoicePromptFormat = `You are an AI assistant that extracts structured invoice data from unstructured text.

Extract the following information:
1. Buyer/Customer information (name, email, phone, address, GSTIN)
2. Products (name, quantity, price, GST percentage, HSN code if mentioned)
3. Invoice details (date, notes)

Available customers: %s
Available products: %s

If a customer name matches an existing customer, use their details. Otherwise, set needsNewCustomer: true.
If a product name matches an existing product, use its price and GST. Otherwise, extract from text.

Return ONLY valid JSON in this exact format:
{
  "buyer": {
    "name": "string",
    "email": "string or null",
    "phone": "string or null",
    "address": "string or null",
    "gstin": "string or null",
    "needsNewCustomer": boolean
  },
  "products": [
    {
      "name": "string",
      "quantity": number,
      "price": number,
      "gst": number,
      "hsnCode": "string or null"
    }
  ],
  "invoice": {
    "date": "YYYY-MM-DD or null",
    "notes": "string or null"
  }
}`

const readInvoicePrompt = `You are an AI assistant that extracts structured invoice data from OCR-extracted text.

Extract the following information from the invoice text:
1. Seller/Business information (name, address, GSTIN, phone, email)
2. Buyer/Customer information (name, email, phone, address, GSTIN)
3. Invoice number and date
4. Products/Items (name, quantity, price, GST amount or percentage, HSN code)
5. Totals (subtotal, GST total, grand total)
6. Payment terms, due date, notes

Return ONLY valid JSON in this exact format:
{
  "seller": {
    "businessName": "string or null",
    "address": "string or null",
    "gstin": "string or null",
    "phone": "string or null",
    "email": "string or null"
  },
  "buyer": {
    "name": "string",
    "email": "string or null",
    "phone": "string or null",
    "address": "string or null",
    "gstin": "string or null"
  },
  "invoice": {
    "invoiceNumber": "string or null",
    "date": "YYYY-MM-DD or null",
    "dueDate": "YYYY-MM-DD or null",
    "notes": "string or null"
  },
  "products": [
    {
      "name": "string",
      "quantity": number,
      "price": number,
      "gst": number,
      "total": number,
      "hsnCode": "string or null"
    }
  ],
  "totals": {
    "subtotal": number,
    "totalGst": number,
    "grandTotal": number
  }
}`

// aiBuyer, aiProduct etc. mirror the JSON shape the model is instructed to
// produce; they are decoded here and mapped onto the response DTOs.
type aiBuyer struct {
	Name             string  `json:"name"`
	Email            *string `json:"email"`
	Phone            *string `json:"phone"`
	Address          *string `json:"address"`
	GSTIN            *string `json:"gstin"`
	NeedsNewCustomer bool    `json:"needsNewCustomer"`
}

type aiProduct struct {
	Name     string           `json:"name"`
	Quantity decimal.Decimal  `json:"quantity"`
	Price    decimal.Decimal  `json:"price"`
	GST      decimal.Decimal  `json:"gst"`
	Total    *decimal.Decimal `json:"total"`
	HSNCode  *string          `json:"hsnCode"`
}

type aiInvoiceHeader struct {
	InvoiceNumber *string `json:"invoiceNumber"`
	Date          *string `json:"date"`
	DueDate       *string `json:"dueDate"`
	Notes         *string `json:"notes"`
}

type aiSeller struct {
	BusinessName *string `json:"businessName"`
	Address      *string `json:"address"`
	GSTIN        *string `json:"gstin"`
	Phone        *string `json:"phone"`
	Email        *string `json:"email"`
}

type aiTotals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	TotalGST   decimal.Decimal `json:"totalGst"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

type aiFillPayload struct {
	Buyer    aiBuyer         `json:"buyer"`
	Products []aiProduct     `json:"products"`
	Invoice  aiInvoiceHeader `json:"invoice"`
}

type aiReadPayload struct {
	Seller   aiSeller        `json:"seller"`
	Buyer    aiBuyer         `json:"buyer"`
	Invoice  aiInvoiceHeader `json:"invoice"`
	Products []aiProduct     `json:"products"`
	Totals   *aiTotals       `json:"totals"`
}

func (s *extractionService) FillInvoice(ctx context.Context, req dto.FillInvoiceRequest) (*dto.FillInvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	customers, err := s.CustomerRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	products, err := s.ProductRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}

	prompt, err := buildFillPrompt(customers, products)
	if err != nil {
		return nil, err
	}

	raw, err := s.Extractor.CompleteJSON(ctx, prompt, req.Text)
	if err != nil {
		return nil, err
	}

	var payload aiFillPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, ierr.WithError(err).
			WithHint("The AI provider returned an unreadable response, please retry").
			Mark(ierr.ErrHTTPClient)
	}

	matchBuyer(&payload.Buyer, customers)
	matchProducts(payload.Products, products)

	return &dto.FillInvoiceResponse{
		Buyer:    toExtractedBuyer(payload.Buyer),
		Products: toExtractedProducts(payload.Products),
		Invoice: dto.ExtractedInvoiceHeader{
			Date:  payload.Invoice.Date,
			Notes: payload.Invoice.Notes,
		},
	}, nil
}

func (s *extractionService) ReadInvoice(ctx context.Context, req dto.ReadInvoiceRequest) (*dto.ReadInvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	raw, err := s.Extractor.CompleteJSON(ctx, readInvoicePrompt, req.OCRText)
	if err != nil {
		return nil, err
	}

	var payload aiReadPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, ierr.WithError(err).
			WithHint("The AI provider returned an unreadable response, please retry").
			Mark(ierr.ErrHTTPClient)
	}

	resp := &dto.ReadInvoiceResponse{
		Seller: dto.ExtractedSeller{
			BusinessName: payload.Seller.BusinessName,
			Address:      payload.Seller.Address,
			GSTIN:        payload.Seller.GSTIN,
			Phone:        payload.Seller.Phone,
			Email:        payload.Seller.Email,
		},
		Buyer: toExtractedBuyer(payload.Buyer),
		Invoice: dto.ExtractedInvoiceHeader{
			InvoiceNumber: payload.Invoice.InvoiceNumber,
			Date:          payload.Invoice.Date,
			DueDate:       payload.Invoice.DueDate,
			Notes:         payload.Invoice.Notes,
		},
		Products: toExtractedProducts(payload.Products),
	}
	if payload.Totals != nil {
		resp.Totals = &dto.ExtractedTotals{
			Subtotal:   payload.Totals.Subtotal,
			TotalGST:   payload.Totals.TotalGST,
			GrandTotal: payload.Totals.GrandTotal,
		}
	}
	return resp, nil
}

// buildFillPrompt embeds the owner's stored records into the system prompt
// so the model prefers known customers and catalog prices.
func buildFillPrompt(customers []*customer.Customer, products []*product.Product) (string, error) {
	type promptCustomer struct {
		Name    string  `json:"name"`
		Email   *string `json:"email"`
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
		GSTIN   *string `json:"gstin"`
	}
	type promptProduct struct {
		Name    string          `json:"name"`
		Price   decimal.Decimal `json:"price"`
		GST     decimal.Decimal `json:"gst"`
		HSNCode *string         `json:"hsnCode"`
	}

	pcs := lo.Map(customers, func(c *customer.Customer, _ int) promptCustomer {
		return promptCustomer{Name: c.Name, Email: c.Email, Phone: c.Phone, Address: c.Address, GSTIN: c.GSTIN}
	})
	pps := lo.Map(products, func(p *product.Product, _ int) promptProduct {
		return promptProduct{Name: p.Name, Price: p.Price, GST: p.GSTPercent, HSNCode: p.HSNCode}
	})

	customersJSON, err := json.Marshal(pcs)
	if err != nil {
		return "", ierr.WithError(err).Mark(ierr.ErrSystem)
	}
	productsJSON, err := json.Marshal(pps)
	if err != nil {
		return "", ierr.WithError(err).Mark(ierr.ErrSystem)
	}

	return fmt.Sprintf(fillInvoicePromptFormat, customersJSON, productsJSON), nil
}

// matchBuyer backfills buyer fields from a stored customer with the same
// name, case-insensitively.
func matchBuyer(buyer *aiBuyer, customers []*customer.Customer) {
	if buyer.Name == "" || buyer.NeedsNewCustomer {
		return
	}
	match, found := lo.Find(customers, func(c *customer.Customer) bool {
		return strings.EqualFold(c.Name, buyer.Name)
	})
	if !found {
		buyer.NeedsNewCustomer = true
		return
	}

	if buyer.Email == nil {
		buyer.Email = match.Email
	}
	if buyer.Phone == nil {
		buyer.Phone = match.Phone
	}
	if buyer.Address == nil {
		buyer.Address = match.Address
	}
	if buyer.GSTIN == nil {
		buyer.GSTIN = match.GSTIN
	}
	buyer.NeedsNewCustomer = false
}

// matchProducts backfills price, gst and hsn from catalog entries with the
// same name, case-insensitively.
func matchProducts(items []aiProduct, products []*product.Product) {
	for i := range items {
		match, found := lo.Find(products, func(p *product.Product) bool {
			return strings.EqualFold(p.Name, items[i].Name)
		})
		if !found {
			continue
		}
		if items[i].Price.IsZero() {
			items[i].Price = match.Price
		}
		if items[i].GST.IsZero() {
			items[i].GST = match.GSTPercent
		}
		if items[i].HSNCode == nil {
			items[i].HSNCode = match.HSNCode
		}
	}
}

func toExtractedBuyer(b aiBuyer) dto.ExtractedBuyer {
	return dto.ExtractedBuyer{
		Name:             b.Name,
		Email:            b.Email,
		Phone:            b.Phone,
		Address:          b.Address,
		GSTIN:            b.GSTIN,
		NeedsNewCustomer: b.NeedsNewCustomer,
	}
}

func toExtractedProducts(items []aiProduct) []dto.ExtractedProduct {
	return lo.Map(items, func(p aiProduct, _ int) dto.ExtractedProduct {
		return dto.ExtractedProduct{
			Name:     p.Name,
			Quantity: p.Quantity.IntPart(),
			Price:    p.Price,
			GST:      p.GST,
			Total:    p.Total,
			HSNCode:  p.HSNCode,
		}
	})
}

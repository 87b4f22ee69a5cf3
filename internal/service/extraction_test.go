package service

import (
	"testing"

	"github.com/billora/billora/internal/dto"
	ierr "github.com/billora/billora/internal/errors"
	"github.com/billora/billora/internal/testutil"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ExtractionServiceSuite struct {
	testutil.BaseServiceTestSuite
	extractor       *testutil.MockExtractor
	service         ExtractionService
	customerService CustomerService
	productService  ProductService
}

func TestExtractionService(t *testing.T) {
	suite.Run(t, new(ExtractionServiceSuite))
}

func (s *ExtractionServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.extractor = testutil.NewMockExtractor()
	params := testServiceParams(&s.BaseServiceTestSuite)
	params.Extractor = s.extractor
	s.service = NewExtractionService(params)
	s.customerService = NewCustomerService(params)
	s.productService = NewProductService(params)
}

func (s *ExtractionServiceSuite) TestFillInvoiceMatchesStoredCustomer() {
	_, err := s.customerService.CreateCustomer(s.GetContext(), dto.CreateCustomerRequest{
		Name:  "Acme Corp",
		Email: lo.ToPtr("billing@acme.example"),
		GSTIN: lo.ToPtr("27AAPFU0939F1ZV"),
	})
	s.Require().NoError(err)

	s.extractor.Responses = []string{`{
		"buyer": {"name": "acme corp", "email": null, "phone": "9876543210", "address": null, "gstin": null, "needsNewCustomer": false},
		"products": [{"name": "Consulting", "quantity": 2, "price": 1500, "gst": 18, "hsnCode": null}],
		"invoice": {"date": "2026-08-15", "notes": "deliver by friday"}
	}`}

	resp, err := s.service.FillInvoice(s.GetContext(), dto.FillInvoiceRequest{
		Text: "bill acme corp for 2 consulting hours at 1500 plus gst",
	})
	s.NoError(err)

	// stored customer details backfill the gaps, case-insensitively
	s.False(resp.Buyer.NeedsNewCustomer)
	s.Equal("billing@acme.example", *resp.Buyer.Email)
	s.Equal("27AAPFU0939F1ZV", *resp.Buyer.GSTIN)
	// fields the model did extract are kept
	s.Equal("9876543210", *resp.Buyer.Phone)

	s.Require().Len(resp.Products, 1)
	s.Equal(int64(2), resp.Products[0].Quantity)
	s.True(resp.Products[0].Price.Equal(decimal.NewFromInt(1500)))
	s.True(resp.Products[0].GST.Equal(decimal.NewFromInt(18)))

	s.Equal("2026-08-15", *resp.Invoice.Date)
	s.Equal("deliver by friday", *resp.Invoice.Notes)

	// the stored records were embedded into the system prompt
	s.Require().Len(s.extractor.Prompts, 1)
	s.Contains(s.extractor.Prompts[0], "Acme Corp")
}

func (s *ExtractionServiceSuite) TestFillInvoiceFlagsUnknownCustomer() {
	s.extractor.Responses = []string{`{
		"buyer": {"name": "Globex", "email": null, "phone": null, "address": null, "gstin": null, "needsNewCustomer": false},
		"products": [],
		"invoice": {"date": null, "notes": null}
	}`}

	resp, err := s.service.FillInvoice(s.GetContext(), dto.FillInvoiceRequest{
		Text: "invoice globex",
	})
	s.NoError(err)
	s.True(resp.Buyer.NeedsNewCustomer)
}

func (s *ExtractionServiceSuite) TestFillInvoiceMatchesCatalogProduct() {
	_, err := s.productService.CreateProduct(s.GetContext(), dto.CreateProductRequest{
		Name:       "Consulting",
		Price:      decimal.NewFromInt(1750),
		GSTPercent: decimal.NewFromInt(18),
		HSNCode:    lo.ToPtr("998313"),
	})
	s.Require().NoError(err)

	s.extractor.Responses = []string{`{
		"buyer": {"name": "Globex", "email": null, "phone": null, "address": null, "gstin": null, "needsNewCustomer": true},
		"products": [{"name": "consulting", "quantity": 3, "price": 0, "gst": 0, "hsnCode": null}],
		"invoice": {"date": null, "notes": null}
	}`}

	resp, err := s.service.FillInvoice(s.GetContext(), dto.FillInvoiceRequest{
		Text: "3 consulting sessions for globex",
	})
	s.NoError(err)

	s.Require().Len(resp.Products, 1)
	s.True(resp.Products[0].Price.Equal(decimal.NewFromInt(1750)), "price: got %s", resp.Products[0].Price)
	s.True(resp.Products[0].GST.Equal(decimal.NewFromInt(18)))
	s.Equal("998313", *resp.Products[0].HSNCode)
}

func (s *ExtractionServiceSuite) TestFillInvoiceToleratesFractionalQuantity() {
	s.extractor.Responses = []string{`{
		"buyer": {"name": "Globex", "email": null, "phone": null, "address": null, "gstin": null, "needsNewCustomer": true},
		"products": [{"name": "Consulting", "quantity": 2.0, "price": 1500, "gst": 18, "hsnCode": null}],
		"invoice": {"date": null, "notes": null}
	}`}

	resp, err := s.service.FillInvoice(s.GetContext(), dto.FillInvoiceRequest{
		Text: "two consulting hours",
	})
	s.NoError(err)
	s.Equal(int64(2), resp.Products[0].Quantity)
}

func (s *ExtractionServiceSuite) TestFillInvoiceRejectsMalformedModelOutput() {
	s.extractor.Responses = []string{`not json at all`}

	_, err := s.service.FillInvoice(s.GetContext(), dto.FillInvoiceRequest{
		Text: "whatever",
	})
	s.Error(err)
	s.True(ierr.IsHTTPClient(err))
}

func (s *ExtractionServiceSuite) TestFillInvoiceRequiresText() {
	_, err := s.service.FillInvoice(s.GetContext(), dto.FillInvoiceRequest{})
	s.Error(err)
	s.True(ierr.IsValidation(err))
	s.Equal(0, s.extractor.CallCount())
}

func (s *ExtractionServiceSuite) TestReadInvoice() {
	s.extractor.Responses = []string{`{
		"seller": {"businessName": "Sharma Traders", "address": "12 MG Road", "gstin": "22AAAAA0000A1Z5", "phone": null, "email": null},
		"buyer": {"name": "Acme Corp", "email": "billing@acme.example", "phone": null, "address": null, "gstin": null},
		"invoice": {"invoiceNumber": "INV-042", "date": "2026-07-01", "dueDate": "2026-07-31", "notes": null},
		"products": [{"name": "Paper reams", "quantity": 3, "price": 800, "gst": 5, "total": 2520, "hsnCode": "4802"}],
		"totals": {"subtotal": 2400, "totalGst": 120, "grandTotal": 2520}
	}`}

	resp, err := s.service.ReadInvoice(s.GetContext(), dto.ReadInvoiceRequest{
		OCRText: "TAX INVOICE Sharma Traders ...",
	})
	s.NoError(err)

	s.Equal("Sharma Traders", *resp.Seller.BusinessName)
	s.Equal("Acme Corp", resp.Buyer.Name)
	s.Equal("INV-042", *resp.Invoice.InvoiceNumber)
	s.Equal("2026-07-31", *resp.Invoice.DueDate)

	s.Require().Len(resp.Products, 1)
	s.Equal(int64(3), resp.Products[0].Quantity)
	s.Equal("4802", *resp.Products[0].HSNCode)
	s.Require().NotNil(resp.Products[0].Total)
	s.True(resp.Products[0].Total.Equal(decimal.NewFromInt(2520)))

	s.Require().NotNil(resp.Totals)
	s.True(resp.Totals.Subtotal.Equal(decimal.NewFromInt(2400)))
	s.True(resp.Totals.TotalGST.Equal(decimal.NewFromInt(120)))
	s.True(resp.Totals.GrandTotal.Equal(decimal.NewFromInt(2520)))
}

func (s *ExtractionServiceSuite) TestReadInvoiceWithoutTotalsBlock() {
	s.extractor.Responses = []string{`{
		"seller": {"businessName": null, "address": null, "gstin": null, "phone": null, "email": null},
		"buyer": {"name": "Acme Corp", "email": null, "phone": null, "address": null, "gstin": null},
		"invoice": {"invoiceNumber": null, "date": null, "dueDate": null, "notes": null},
		"products": []
	}`}

	resp, err := s.service.ReadInvoice(s.GetContext(), dto.ReadInvoiceRequest{
		OCRText: "barely legible scan",
	})
	s.NoError(err)
	s.Nil(resp.Totals)
}

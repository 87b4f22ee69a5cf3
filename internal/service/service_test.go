package service

import (
	"github.com/billora/billora/internal/testutil"
)

// testServiceParams wires the in-memory stores and test doubles from the
// base suite into a ServiceParams the services under test can run on.
func testServiceParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
		Logger:       s.GetLogger(),
		Config:       s.GetConfig(),
		Auth:         s.GetAuthService(),
		Cache:        s.GetCache(),
		PDFGenerator: s.GetPDFGenerator(),
		UserRepo:     stores.UserRepo,
		CustomerRepo: stores.CustomerRepo,
		ProductRepo:  stores.ProductRepo,
		SellerRepo:   stores.SellerRepo,
		InvoiceRepo:  stores.InvoiceRepo,
	}
}

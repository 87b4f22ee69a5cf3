package testutil

import (
	"context"
	"time"

	"github.com/billora/billora/internal/auth"
	"github.com/billora/billora/internal/cache"
	"github.com/billora/billora/internal/config"
	"github.com/billora/billora/internal/domain/customer"
	"github.com/billora/billora/internal/domain/invoice"
	"github.com/billora/billora/internal/domain/product"
	"github.com/billora/billora/internal/domain/seller"
	"github.com/billora/billora/internal/domain/user"
	"github.com/billora/billora/internal/logger"
	"github.com/billora/billora/internal/pdf"
	"github.com/billora/billora/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	UserRepo     user.Repository
	CustomerRepo customer.Repository
	ProductRepo  product.Repository
	SellerRepo   seller.Repository
	InvoiceRepo  invoice.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	stores       Stores
	cache        cache.Cache
	authService  *auth.Service
	logger       *logger.Logger
	config       *config.Configuration
	pdfGenerator pdf.Generator
	now          time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	s.config = config.GetDefaultConfig()

	var err error
	s.logger, err = logger.NewLogger()
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}

	s.authService = auth.NewService(s.config)
	s.pdfGenerator = NewMockPDFGenerator(s.logger)
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.cache = cache.NewInMemoryCache()
	s.stores = Stores{
		UserRepo:     NewInMemoryUserStore(),
		CustomerRepo: NewInMemoryCustomerStore(),
		ProductRepo:  NewInMemoryProductStore(),
		SellerRepo:   NewInMemorySellerStore(),
		InvoiceRepo:  NewInMemoryInvoiceStore(),
	}
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.UserRepo.(*InMemoryUserStore).Clear()
	s.stores.CustomerRepo.(*InMemoryCustomerStore).Clear()
	s.stores.ProductRepo.(*InMemoryProductStore).Clear()
	s.stores.SellerRepo.(*InMemorySellerStore).Clear()
	s.stores.InvoiceRepo.(*InMemoryInvoiceStore).Clear()
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// SetContext overrides the test context, e.g. to act as another owner
func (s *BaseServiceTestSuite) SetContext(ctx context.Context) {
	s.ctx = ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetCache returns the per-test cache instance
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

// GetAuthService returns the token service backed by the test config
func (s *BaseServiceTestSuite) GetAuthService() *auth.Service {
	return s.authService
}

// GetPDFGenerator returns the test PDF generator
func (s *BaseServiceTestSuite) GetPDFGenerator() pdf.Generator {
	return s.pdfGenerator
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}

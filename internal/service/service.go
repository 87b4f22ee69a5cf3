package service

import (
	"github.com/billora/billora/internal/ai"
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
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger       *logger.Logger
	Config       *config.Configuration
	Auth         *auth.Service
	Cache        cache.Cache
	Extractor    ai.Extractor
	PDFGenerator pdf.Generator

	// Repositories
	UserRepo     user.Repository
	CustomerRepo customer.Repository
	ProductRepo  product.Repository
	SellerRepo   seller.Repository
	InvoiceRepo  invoice.Repository
}

// NewServiceParams assembles the common service dependencies
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	authService *auth.Service,
	cache cache.Cache,
	extractor ai.Extractor,
	pdfGenerator pdf.Generator,
	userRepo user.Repository,
	customerRepo customer.Repository,
	productRepo product.Repository,
	sellerRepo seller.Repository,
	invoiceRepo invoice.Repository,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       config,
		Auth:         authService,
		Cache:        cache,
		Extractor:    extractor,
		PDFGenerator: pdfGenerator,
		UserRepo:     userRepo,
		CustomerRepo: customerRepo,
		ProductRepo:  productRepo,
		SellerRepo:   sellerRepo,
		InvoiceRepo:  invoiceRepo,
	}
}

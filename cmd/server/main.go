package main

import (
	"context"
	"time"

	"github.com/billora/billora/internal/ai"
	"github.com/billora/billora/internal/api"
	v1 "github.com/billora/billora/internal/api/v1"
	"github.com/billora/billora/internal/auth"
	"github.com/billora/billora/internal/cache"
	"github.com/billora/billora/internal/config"
	"github.com/billora/billora/internal/logger"
	"github.com/billora/billora/internal/mongodb"
	"github.com/billora/billora/internal/pdf"
	"github.com/billora/billora/internal/repository"
	"github.com/billora/billora/internal/service"
	"github.com/billora/billora/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// @title Billora API
// @version 1.0
// @description Invoicing API for small businesses
// @BasePath /v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter the token in the format **Bearer &lt;token&gt;**

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	// Load .env if present; real config comes from viper
	_ = godotenv.Load()

	validator.NewValidator()

	app := fx.New(
		fx.Provide(
			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Auth
			auth.NewService,

			// Cache
			cache.NewInMemoryCache,

			// Mongo
			mongodb.NewClient,

			// AI
			provideExtractor,

			// PDF
			pdf.NewGenerator,

			// Repositories
			repository.NewUserRepository,
			repository.NewCustomerRepository,
			repository.NewProductRepository,
			repository.NewSellerRepository,
			repository.NewInvoiceRepository,

			// Services
			service.NewServiceParams,
			service.NewAuthService,
			service.NewCustomerService,
			service.NewProductService,
			service.NewSellerService,
			service.NewInvoiceService,
			service.NewDashboardService,
			service.NewExtractionService,

			// API
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			connectMongo,
			startServer,
		),
	)

	app.Run()
}

func provideExtractor(cfg *config.Configuration, log *logger.Logger) (ai.Extractor, error) {
	return ai.NewGeminiExtractor(context.Background(), cfg, log)
}

func provideHandlers(
	log *logger.Logger,
	authService service.AuthService,
	customerService service.CustomerService,
	productService service.ProductService,
	sellerService service.SellerService,
	invoiceService service.InvoiceService,
	dashboardService service.DashboardService,
	extractionService service.ExtractionService,
) api.Handlers {
	return api.Handlers{
		Health:     v1.NewHealthHandler(log),
		Auth:       v1.NewAuthHandler(authService, log),
		Customer:   v1.NewCustomerHandler(customerService, log),
		Product:    v1.NewProductHandler(productService, log),
		Seller:     v1.NewSellerHandler(sellerService, log),
		Invoice:    v1.NewInvoiceHandler(invoiceService, log),
		Dashboard:  v1.NewDashboardHandler(dashboardService, log),
		Extraction: v1.NewExtractionHandler(extractionService, log),
	}
}

func provideRouter(handlers api.Handlers, authService *auth.Service, log *logger.Logger) *gin.Engine {
	return api.NewRouter(handlers, authService, log)
}

func connectMongo(lc fx.Lifecycle, client *mongodb.Client, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.Connect(ctx)
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Disconnecting from mongodb...")
			return client.Disconnect(ctx)
		},
	})
}

func startServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infof("Starting API server on %s", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}

package api

import (
	v1 "github.com/billora/billora/internal/api/v1"
	"github.com/billora/billora/internal/auth"
	"github.com/billora/billora/internal/logger"
	"github.com/billora/billora/internal/rest/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Health     *v1.HealthHandler
	Auth       *v1.AuthHandler
	Customer   *v1.CustomerHandler
	Product    *v1.ProductHandler
	Seller     *v1.SellerHandler
	Invoice    *v1.InvoiceHandler
	Dashboard  *v1.DashboardHandler
	Extraction *v1.ExtractionHandler
}

func NewHandlers(
	health *v1.HealthHandler,
	authHandler *v1.AuthHandler,
	customer *v1.CustomerHandler,
	product *v1.ProductHandler,
	seller *v1.SellerHandler,
	invoice *v1.InvoiceHandler,
	dashboard *v1.DashboardHandler,
	extraction *v1.ExtractionHandler,
) Handlers {
	return Handlers{
		Health:     health,
		Auth:       authHandler,
		Customer:   customer,
		Product:    product,
		Seller:     seller,
		Invoice:    invoice,
		Dashboard:  dashboard,
		Extraction: extraction,
	}
}

func NewRouter(handlers Handlers, authService *auth.Service, log *logger.Logger) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
	}))
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.ErrorHandler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers, authService, log)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers, authService *auth.Service, log *logger.Logger) {
	router.GET("/health", handlers.Health.Health)

	// Auth routes (signup and login are public)
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", handlers.Auth.Signup)
		authGroup.POST("/login", handlers.Auth.Login)
		authGroup.GET("/me", middleware.AuthenticateMiddleware(authService, log), handlers.Auth.Me)
	}

	private := router.Group("")
	private.Use(middleware.AuthenticateMiddleware(authService, log))

	customers := private.Group("/customers")
	{
		customers.POST("", handlers.Customer.CreateCustomer)
		customers.GET("", handlers.Customer.ListCustomers)
		customers.GET("/:id", handlers.Customer.GetCustomer)
		customers.PUT("/:id", handlers.Customer.UpdateCustomer)
		customers.DELETE("/:id", handlers.Customer.DeleteCustomer)
	}

	products := private.Group("/products")
	{
		products.POST("", handlers.Product.CreateProduct)
		products.GET("", handlers.Product.ListProducts)
		products.GET("/:id", handlers.Product.GetProduct)
		products.PUT("/:id", handlers.Product.UpdateProduct)
		products.DELETE("/:id", handlers.Product.DeleteProduct)
	}

	sellers := private.Group("/sellers")
	{
		sellers.POST("", handlers.Seller.CreateSeller)
		sellers.GET("", handlers.Seller.ListSellers)
		sellers.GET("/default", handlers.Seller.GetDefaultSeller)
		sellers.GET("/:id", handlers.Seller.GetSeller)
		sellers.PUT("/:id", handlers.Seller.UpdateSeller)
		sellers.DELETE("/:id", handlers.Seller.DeleteSeller)
	}

	invoices := private.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.CreateInvoice)
		invoices.GET("", handlers.Invoice.ListInvoices)
		invoices.GET("/suggest-number", handlers.Invoice.SuggestInvoiceNumber)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.GET("/:id/pdf", handlers.Invoice.GetInvoicePDF)
		invoices.PUT("/:id", handlers.Invoice.UpdateInvoice)
		invoices.DELETE("/:id", handlers.Invoice.DeleteInvoice)
	}

	dashboard := private.Group("/dashboard")
	{
		dashboard.GET("/stats", handlers.Dashboard.GetStats)
	}

	ai := private.Group("/ai")
	{
		ai.POST("/fill-invoice", handlers.Extraction.FillInvoice)
		ai.POST("/read-invoice", handlers.Extraction.ReadInvoice)
	}
}

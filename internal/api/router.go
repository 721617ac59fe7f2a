package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/api/v1"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/config"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/logger"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/rest/middleware"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/sentry"
)

type Handlers struct {
	Health   *v1.HealthHandler
	Sequence *v1.SequenceHandler
	Stock    *v1.StockHandler
	Report   *v1.ReportHandler
	Stream   *v1.StreamHandler
	Customer *v1.CustomerHandler
	Supplier *v1.SupplierHandler
	Product  *v1.ProductHandler
	Invoice  *v1.InvoiceHandler
	Payment  *v1.PaymentHandler
}

func NewRouter(handlers Handlers, cfg *config.Configuration, logger *logger.Logger, sentrySvc *sentry.Service) *gin.Engine {
	router := gin.Default()
	router.Use(
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(cfg),
		middleware.ErrorHandler(logger, sentrySvc),
	)

	router.GET("/health", handlers.Health.Health)

	// v1 routes
	v1Router := router.Group("/v1")

	sequences := v1Router.Group("/sequences")
	{
		sequences.POST("/:name/next", handlers.Sequence.Next)
		sequences.GET("/:name", handlers.Sequence.Peek)
	}

	stock := v1Router.Group("/stock")
	{
		stock.POST("/adjust", handlers.Stock.Adjust)
		stock.GET("", handlers.Stock.ListStock)
		stock.GET("/:product_id/:store_id", handlers.Stock.GetStock)
	}

	reports := v1Router.Group("/reports")
	{
		reports.GET("/monthly-sales", handlers.Report.MonthlySales)
		reports.GET("/ledger", handlers.Report.Ledger)
		reports.GET("/low-movement", handlers.Report.LowMovement)
	}

	v1Router.GET("/stream/:topic", handlers.Stream.Subscribe)

	customers := v1Router.Group("/customers")
	{
		customers.POST("", handlers.Customer.CreateCustomer)
		customers.GET("", handlers.Customer.GetCustomers)
		customers.GET("/:id", handlers.Customer.GetCustomer)
	}

	suppliers := v1Router.Group("/suppliers")
	{
		suppliers.POST("", handlers.Supplier.CreateSupplier)
		suppliers.GET("", handlers.Supplier.GetSuppliers)
		suppliers.GET("/:id", handlers.Supplier.GetSupplier)
	}

	products := v1Router.Group("/products")
	{
		products.POST("", handlers.Product.CreateProduct)
		products.GET("", handlers.Product.GetProducts)
		products.GET("/:id", handlers.Product.GetProduct)
	}

	invoices := v1Router.Group("/invoices")
	{
		invoices.POST("", handlers.Invoice.CreateInvoice)
		invoices.GET("", handlers.Invoice.ListInvoices)
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
	}

	payments := v1Router.Group("/payments")
	{
		payments.POST("", handlers.Payment.CreatePayment)
		payments.GET("", handlers.Payment.ListPayments)
		payments.GET("/:id", handlers.Payment.GetPayment)
	}

	return router
}

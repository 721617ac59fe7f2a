package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/api"
	v1 "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/api/v1"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/cache"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/config"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/logger"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/postgres"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/pubsub/memory"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/repository"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/sentry"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/service"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/stream"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/validator"
	"go.uber.org/fx"
)

const shutdownTimeout = 10 * time.Second

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	// Initialize Fx application
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Cache
			cache.NewInMemoryCache,

			// Change notifications
			memory.NewPubSub,

			// Repositories
			repository.NewSequenceRepository,
			repository.NewInventoryRepository,
			repository.NewCustomerRepository,
			repository.NewSupplierRepository,
			repository.NewProductRepository,
			repository.NewInvoiceRepository,
			repository.NewPaymentRepository,
		),
		sentry.Module(),
		postgres.Module(),
		stream.Module(),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewSequenceService,
			service.NewInventoryService,
			service.NewReportService,
			service.NewCustomerService,
			service.NewSupplierService,
			service.NewProductService,
			service.NewInvoiceService,
			service.NewPaymentService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			migrateOnStart,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	bus *stream.Bus,
	sequenceService service.SequenceService,
	inventoryService service.InventoryService,
	reportService service.ReportService,
	customerService service.CustomerService,
	supplierService service.SupplierService,
	productService service.ProductService,
	invoiceService service.InvoiceService,
	paymentService service.PaymentService,
) api.Handlers {
	return api.Handlers{
		Health:   v1.NewHealthHandler(logger),
		Sequence: v1.NewSequenceHandler(sequenceService, logger),
		Stock:    v1.NewStockHandler(inventoryService, logger),
		Report:   v1.NewReportHandler(reportService, logger),
		Stream:   v1.NewStreamHandler(bus, logger),
		Customer: v1.NewCustomerHandler(customerService, logger),
		Supplier: v1.NewSupplierHandler(supplierService, logger),
		Product:  v1.NewProductHandler(productService, logger),
		Invoice:  v1.NewInvoiceHandler(invoiceService, logger),
		Payment:  v1.NewPaymentHandler(paymentService, logger),
	}
}

func provideRouter(handlers api.Handlers, cfg *config.Configuration, logger *logger.Logger, sentrySvc *sentry.Service) *gin.Engine {
	return api.NewRouter(handlers, cfg, logger, sentrySvc)
}

// migrateOnStart applies pending migrations before the server starts
// listening, when enabled or when running locally
func migrateOnStart(lc fx.Lifecycle, cfg *config.Configuration, db *postgres.DB, log *logger.Logger) {
	if !cfg.Postgres.AutoMigrate && cfg.Deployment.Mode != types.ModeLocal {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Running database migrations...")
			return db.Migrate(ctx, false)
		},
	})
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	bus *stream.Bus,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, bus, cfg, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	bus *stream.Bus,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	srv := &http.Server{
		Addr:    cfg.Server.Address,
		Handler: r,
	}
	// open event streams only end once their subscriptions do
	srv.RegisterOnShutdown(func() {
		if err := bus.Close(); err != nil {
			log.Errorw("failed to close notification bus", "error", err)
		}
	})

	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()
			return srv.Shutdown(ctx)
		},
	})
}

package service

import (
	"context"

	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/cache"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/config"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/customer"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/inventory"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/invoice"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/payment"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/product"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/sequence"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/supplier"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/logger"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/postgres"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/stream"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.IClient
	Cache  cache.Cache

	// Repositories
	SequenceRepo sequence.Repository
	StockRepo    inventory.Repository
	CustomerRepo customer.Repository
	SupplierRepo supplier.Repository
	ProductRepo  product.Repository
	InvoiceRepo  invoice.Repository
	PaymentRepo  payment.Repository

	// Publishers
	Publisher stream.Publisher
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db postgres.IClient,
	cache cache.Cache,
	sequenceRepo sequence.Repository,
	stockRepo inventory.Repository,
	customerRepo customer.Repository,
	supplierRepo supplier.Repository,
	productRepo product.Repository,
	invoiceRepo invoice.Repository,
	paymentRepo payment.Repository,
	publisher stream.Publisher,
) ServiceParams {
	return ServiceParams{
		Logger:       logger,
		Config:       config,
		DB:           db,
		Cache:        cache,
		SequenceRepo: sequenceRepo,
		StockRepo:    stockRepo,
		CustomerRepo: customerRepo,
		SupplierRepo: supplierRepo,
		ProductRepo:  productRepo,
		InvoiceRepo:  invoiceRepo,
		PaymentRepo:  paymentRepo,
		Publisher:    publisher,
	}
}

// publishChange notifies subscribers of a committed mutation. The mutation
// already succeeded, so a failed publish is logged and never returned.
func (p ServiceParams) publishChange(ctx context.Context, topic string, payload interface{}) {
	if p.Publisher == nil {
		return
	}
	if err := p.Publisher.Publish(ctx, topic, payload); err != nil {
		p.Logger.Errorw("failed to publish change notification",
			"topic", topic,
			"error", err,
		)
	}
}

// readWithRetry runs a read-only repository call with the bounded store retry
func readWithRetry[T any](ctx context.Context, p ServiceParams, op func(ctx context.Context) (T, error)) (T, error) {
	return postgres.RetryRead(ctx, p.Config.Store, p.Logger, op)
}

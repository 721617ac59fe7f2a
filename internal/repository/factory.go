package repository

import (
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/customer"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/inventory"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/invoice"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/payment"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/product"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/sequence"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/supplier"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/logger"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/postgres"
	postgresRepo "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/repository/postgres"
)

func NewSequenceRepository(db *postgres.DB, logger *logger.Logger) sequence.Repository {
	return postgresRepo.NewSequenceRepository(db, logger)
}

func NewInventoryRepository(db *postgres.DB, logger *logger.Logger) inventory.Repository {
	return postgresRepo.NewInventoryRepository(db, logger)
}

func NewCustomerRepository(db *postgres.DB, logger *logger.Logger) customer.Repository {
	return postgresRepo.NewCustomerRepository(db, logger)
}

func NewSupplierRepository(db *postgres.DB, logger *logger.Logger) supplier.Repository {
	return postgresRepo.NewSupplierRepository(db, logger)
}

func NewProductRepository(db *postgres.DB, logger *logger.Logger) product.Repository {
	return postgresRepo.NewProductRepository(db, logger)
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return postgresRepo.NewInvoiceRepository(db, logger)
}

func NewPaymentRepository(db *postgres.DB, logger *logger.Logger) payment.Repository {
	return postgresRepo.NewPaymentRepository(db, logger)
}

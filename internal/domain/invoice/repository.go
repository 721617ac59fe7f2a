package invoice

import (
	"context"

	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

// Repository defines the interface for invoice data access
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	Get(ctx context.Context, id string) (*Invoice, error)
	// List returns invoices matching the kind and date window, newest first
	List(ctx context.Context, filter *types.InvoiceFilter) ([]*Invoice, error)
	Count(ctx context.Context, filter *types.InvoiceFilter) (int, error)
}

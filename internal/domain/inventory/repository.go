package inventory

import (
	"context"

	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

// Repository exposes the ledger primitives. Each method is one atomic store
// operation keyed on (productID, storeID); the read-modify-write policy on
// top of them lives in the service layer.
type Repository interface {
	// ApplyDelta adds the deltas to an existing entry only if neither figure
	// would go negative. It returns ErrNotFound when no row matched, either
	// because the pair is missing or because the guard rejected the change.
	ApplyDelta(ctx context.Context, adj Adjustment) (*StockEntry, error)

	// CreateIfAbsent inserts the entry unless the pair already exists, in
	// which case it returns ErrAlreadyExists and leaves the row untouched.
	CreateIfAbsent(ctx context.Context, entry *StockEntry) (*StockEntry, error)

	Get(ctx context.Context, productID, storeID string) (*StockEntry, error)
	List(ctx context.Context, filter *types.StockFilter) ([]*StockEntry, error)
	Count(ctx context.Context, filter *types.StockFilter) (int, error)
}

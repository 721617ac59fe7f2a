package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/inventory"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

type stockKey struct {
	productID string
	storeID   string
}

// InMemoryStockStore implements inventory.Repository with the same per-call
// atomicity as the postgres statements: a guarded delta and an insert that
// never overwrites.
type InMemoryStockStore struct {
	mu      sync.Mutex
	entries map[stockKey]*inventory.StockEntry

	// BeforeCreate, when set, runs before CreateIfAbsent takes the lock.
	// Tests use it to force two first writers to interleave.
	BeforeCreate func()
}

var _ inventory.Repository = (*InMemoryStockStore)(nil)

func NewInMemoryStockStore() *InMemoryStockStore {
	return &InMemoryStockStore{entries: make(map[stockKey]*inventory.StockEntry)}
}

func copyStockEntry(e *inventory.StockEntry) *inventory.StockEntry {
	if e == nil {
		return nil
	}
	c := *e
	return &c
}

func (s *InMemoryStockStore) ApplyDelta(ctx context.Context, adj inventory.Adjustment) (*inventory.StockEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := stockKey{adj.ProductID, adj.StoreID}
	e, ok := s.entries[key]
	if !ok || !adj.FitsOn(e) {
		return nil, ierr.NewError("no stock entry accepted the adjustment").Mark(ierr.ErrNotFound)
	}

	// undo by reversing the delta; other writers may have moved the entry since
	reverse := adj.Invert()
	OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if cur, ok := s.entries[key]; ok {
			cur.QuantityPkts += reverse.DeltaQuantity
			cur.WeightKg = cur.WeightKg.Add(reverse.DeltaWeight)
		}
	})

	e.QuantityPkts += adj.DeltaQuantity
	e.WeightKg = e.WeightKg.Add(adj.DeltaWeight)
	if adj.Reason != "" {
		e.Notes = adj.Reason
	}
	e.UpdatedAt = time.Now().UTC()
	return copyStockEntry(e), nil
}

func (s *InMemoryStockStore) CreateIfAbsent(ctx context.Context, entry *inventory.StockEntry) (*inventory.StockEntry, error) {
	if s.BeforeCreate != nil {
		s.BeforeCreate()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := stockKey{entry.ProductID, entry.StoreID}
	if _, ok := s.entries[key]; ok {
		return nil, ierr.NewError("stock entry already exists").Mark(ierr.ErrAlreadyExists)
	}
	if entry.QuantityPkts < 0 || entry.WeightKg.IsNegative() {
		return nil, ierr.NewError("negative opening stock").Mark(ierr.ErrInvalidInitialAdjustment)
	}
	s.entries[key] = copyStockEntry(entry)
	OnRollback(ctx, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.entries, key)
	})
	return copyStockEntry(entry), nil
}

func (s *InMemoryStockStore) Get(_ context.Context, productID, storeID string) (*inventory.StockEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[stockKey{productID, storeID}]
	if !ok {
		return nil, ierr.NewError("stock entry not found").
			WithHintf("No stock recorded for product %s in store %s", productID, storeID).
			Mark(ierr.ErrNotFound)
	}
	return copyStockEntry(e), nil
}

func (s *InMemoryStockStore) List(_ context.Context, filter *types.StockFilter) ([]*inventory.StockEntry, error) {
	items := s.filtered(filter)
	if filter == nil || filter.QueryFilter.IsUnlimited() {
		return items, nil
	}

	start := filter.GetOffset()
	if start >= len(items) {
		return []*inventory.StockEntry{}, nil
	}
	end := lo.Min([]int{start + filter.GetLimit(), len(items)})
	return items[start:end], nil
}

func (s *InMemoryStockStore) Count(_ context.Context, filter *types.StockFilter) (int, error) {
	return len(s.filtered(filter)), nil
}

func (s *InMemoryStockStore) filtered(filter *types.StockFilter) []*inventory.StockEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if filter == nil {
		filter = &types.StockFilter{}
	}

	result := make([]*inventory.StockEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if len(filter.ProductIDs) > 0 && !lo.Contains(filter.ProductIDs, e.ProductID) {
			continue
		}
		if len(filter.StoreIDs) > 0 && !lo.Contains(filter.StoreIDs, e.StoreID) {
			continue
		}
		if filter.NonZeroOnly && e.QuantityPkts == 0 && e.WeightKg.IsZero() {
			continue
		}
		result = append(result, copyStockEntry(e))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].ProductID != result[j].ProductID {
			return result[i].ProductID < result[j].ProductID
		}
		return result[i].StoreID < result[j].StoreID
	})
	return result
}

func (s *InMemoryStockStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[stockKey]*inventory.StockEntry)
}

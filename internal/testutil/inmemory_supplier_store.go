package testutil

import (
	"context"

	"github.com/samber/lo"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/supplier"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

// InMemorySupplierStore implements supplier.Repository
type InMemorySupplierStore struct {
	*InMemoryStore[*supplier.Supplier]
}

var _ supplier.Repository = (*InMemorySupplierStore)(nil)

// NewInMemorySupplierStore creates a new in-memory supplier store
func NewInMemorySupplierStore() *InMemorySupplierStore {
	return &InMemorySupplierStore{
		InMemoryStore: NewInMemoryStore[*supplier.Supplier](),
	}
}

func copySupplier(c *supplier.Supplier) *supplier.Supplier {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func (s *InMemorySupplierStore) Create(ctx context.Context, c *supplier.Supplier) error {
	return s.InMemoryStore.Create(ctx, c.ID, copySupplier(c))
}

func (s *InMemorySupplierStore) Get(ctx context.Context, id string) (*supplier.Supplier, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copySupplier(c), nil
}

func (s *InMemorySupplierStore) List(ctx context.Context, filter *types.PartyFilter) ([]*supplier.Supplier, error) {
	items, err := s.InMemoryStore.List(ctx, partyQueryFilter(filter), supplierFilterFn(filter), supplierSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(c *supplier.Supplier, _ int) *supplier.Supplier {
		return copySupplier(c)
	}), nil
}

func (s *InMemorySupplierStore) Count(ctx context.Context, filter *types.PartyFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, nil, supplierFilterFn(filter))
}

func supplierFilterFn(filter *types.PartyFilter) FilterFunc[*supplier.Supplier] {
	return func(_ context.Context, c *supplier.Supplier, _ interface{}) bool {
		if c.Status == types.StatusDeleted {
			return false
		}
		return filter == nil || matchesParty(filter.Search, c.Name, c.Code)
	}
}

func supplierSortFn(i, j *supplier.Supplier) bool {
	if !i.CreatedAt.Equal(j.CreatedAt) {
		return i.CreatedAt.After(j.CreatedAt)
	}
	return i.ID > j.ID
}

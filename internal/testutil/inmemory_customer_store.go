package testutil

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/customer"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

// InMemoryCustomerStore implements customer.Repository
type InMemoryCustomerStore struct {
	*InMemoryStore[*customer.Customer]
}

var _ customer.Repository = (*InMemoryCustomerStore)(nil)

// NewInMemoryCustomerStore creates a new in-memory customer store
func NewInMemoryCustomerStore() *InMemoryCustomerStore {
	return &InMemoryCustomerStore{
		InMemoryStore: NewInMemoryStore[*customer.Customer](),
	}
}

func copyCustomer(c *customer.Customer) *customer.Customer {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

func (s *InMemoryCustomerStore) Create(ctx context.Context, c *customer.Customer) error {
	return s.InMemoryStore.Create(ctx, c.ID, copyCustomer(c))
}

func (s *InMemoryCustomerStore) Get(ctx context.Context, id string) (*customer.Customer, error) {
	c, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyCustomer(c), nil
}

func (s *InMemoryCustomerStore) List(ctx context.Context, filter *types.PartyFilter) ([]*customer.Customer, error) {
	items, err := s.InMemoryStore.List(ctx, partyQueryFilter(filter), customerFilterFn(filter), customerSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(c *customer.Customer, _ int) *customer.Customer {
		return copyCustomer(c)
	}), nil
}

func (s *InMemoryCustomerStore) Count(ctx context.Context, filter *types.PartyFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, nil, customerFilterFn(filter))
}

func customerFilterFn(filter *types.PartyFilter) FilterFunc[*customer.Customer] {
	return func(_ context.Context, c *customer.Customer, _ interface{}) bool {
		if c.Status == types.StatusDeleted {
			return false
		}
		return filter == nil || matchesParty(filter.Search, c.Name, c.Code)
	}
}

func customerSortFn(i, j *customer.Customer) bool {
	if !i.CreatedAt.Equal(j.CreatedAt) {
		return i.CreatedAt.After(j.CreatedAt)
	}
	return i.ID > j.ID
}

// matchesParty is the case insensitive name or code search used for parties and products
func matchesParty(search string, fields ...string) bool {
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}

// partyQueryFilter returns the pagination part of filter, nil meaning unlimited
func partyQueryFilter(filter *types.PartyFilter) types.BaseFilter {
	if filter == nil {
		return nil
	}
	return filter.QueryFilter
}

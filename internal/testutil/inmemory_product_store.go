package testutil

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/product"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

// InMemoryProductStore implements product.Repository
type InMemoryProductStore struct {
	*InMemoryStore[*product.Product]
}

var _ product.Repository = (*InMemoryProductStore)(nil)

func NewInMemoryProductStore() *InMemoryProductStore {
	return &InMemoryProductStore{
		InMemoryStore: NewInMemoryStore[*product.Product](),
	}
}

func copyProduct(p *product.Product) *product.Product {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

func (s *InMemoryProductStore) Create(ctx context.Context, p *product.Product) error {
	return s.InMemoryStore.Create(ctx, p.ID, copyProduct(p))
}

func (s *InMemoryProductStore) Get(ctx context.Context, id string) (*product.Product, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyProduct(p), nil
}

func (s *InMemoryProductStore) List(ctx context.Context, filter *types.ProductFilter) ([]*product.Product, error) {
	var qf types.BaseFilter
	if filter != nil {
		qf = filter.QueryFilter
	}
	items, err := s.InMemoryStore.List(ctx, qf, productFilterFn(filter), productSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(p *product.Product, _ int) *product.Product {
		return copyProduct(p)
	}), nil
}

func (s *InMemoryProductStore) Count(ctx context.Context, filter *types.ProductFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, nil, productFilterFn(filter))
}

func productFilterFn(filter *types.ProductFilter) FilterFunc[*product.Product] {
	return func(_ context.Context, p *product.Product, _ interface{}) bool {
		if p.Status == types.StatusDeleted {
			return false
		}
		if filter == nil {
			return true
		}
		if filter.Category != "" && !strings.EqualFold(filter.Category, p.Category) {
			return false
		}
		return matchesParty(filter.Search, p.Name, p.Code)
	}
}

func productSortFn(i, j *product.Product) bool {
	if i.Name != j.Name {
		return i.Name < j.Name
	}
	return i.ID < j.ID
}

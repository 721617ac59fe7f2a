package testutil

import (
	"context"

	"github.com/samber/lo"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/invoice"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]
	err error
}

var _ invoice.Repository = (*InMemoryInvoiceStore)(nil)

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.Invoice](),
	}
}

// FailWith makes List and Count return err, until called with nil
func (s *InMemoryInvoiceStore) FailWith(err error) {
	s.err = err
}

func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	if inv == nil {
		return nil
	}
	cp := *inv
	cp.Items = append(invoice.LineItems{}, inv.Items...)
	return &cp
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	return s.InMemoryStore.Create(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyInvoice(inv), nil
}

func (s *InMemoryInvoiceStore) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	if s.err != nil {
		return nil, s.err
	}
	var qf types.BaseFilter
	if filter != nil {
		qf = filter.QueryFilter
	}
	items, err := s.InMemoryStore.List(ctx, qf, invoiceFilterFn(filter), invoiceSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(inv *invoice.Invoice, _ int) *invoice.Invoice {
		return copyInvoice(inv)
	}), nil
}

func (s *InMemoryInvoiceStore) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.InMemoryStore.Count(ctx, nil, invoiceFilterFn(filter))
}

func invoiceFilterFn(filter *types.InvoiceFilter) FilterFunc[*invoice.Invoice] {
	return func(_ context.Context, inv *invoice.Invoice, _ interface{}) bool {
		if inv.Status == types.StatusDeleted {
			return false
		}
		if filter == nil {
			return true
		}
		if filter.Kind != "" && inv.Kind != filter.Kind {
			return false
		}
		if filter.PartyID != "" && inv.PartyID != filter.PartyID {
			return false
		}
		if filter.StartDate != nil && inv.InvoiceDate.Before(*filter.StartDate) {
			return false
		}
		if filter.EndDate != nil && !inv.InvoiceDate.Before(*filter.EndDate) {
			return false
		}
		return true
	}
}

func invoiceSortFn(i, j *invoice.Invoice) bool {
	if !i.InvoiceDate.Equal(j.InvoiceDate) {
		return i.InvoiceDate.After(j.InvoiceDate)
	}
	return i.InvoiceNumber > j.InvoiceNumber
}

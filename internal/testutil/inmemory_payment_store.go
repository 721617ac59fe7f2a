package testutil

import (
	"context"

	"github.com/samber/lo"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/payment"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

// InMemoryPaymentStore implements payment.Repository
type InMemoryPaymentStore struct {
	*InMemoryStore[*payment.Payment]
}

var _ payment.Repository = (*InMemoryPaymentStore)(nil)

func NewInMemoryPaymentStore() *InMemoryPaymentStore {
	return &InMemoryPaymentStore{
		InMemoryStore: NewInMemoryStore[*payment.Payment](),
	}
}

func copyPayment(p *payment.Payment) *payment.Payment {
	if p == nil {
		return nil
	}
	cp := *p
	if p.ChequeNumber != nil {
		cp.ChequeNumber = lo.ToPtr(*p.ChequeNumber)
	}
	return &cp
}

func (s *InMemoryPaymentStore) Create(ctx context.Context, p *payment.Payment) error {
	return s.InMemoryStore.Create(ctx, p.ID, copyPayment(p))
}

func (s *InMemoryPaymentStore) Get(ctx context.Context, id string) (*payment.Payment, error) {
	p, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return copyPayment(p), nil
}

func (s *InMemoryPaymentStore) List(ctx context.Context, filter *types.PaymentFilter) ([]*payment.Payment, error) {
	var qf types.BaseFilter
	if filter != nil {
		qf = filter.QueryFilter
	}
	items, err := s.InMemoryStore.List(ctx, qf, paymentFilterFn(filter), paymentSortFn)
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(p *payment.Payment, _ int) *payment.Payment {
		return copyPayment(p)
	}), nil
}

func (s *InMemoryPaymentStore) Count(ctx context.Context, filter *types.PaymentFilter) (int, error) {
	return s.InMemoryStore.Count(ctx, nil, paymentFilterFn(filter))
}

func paymentFilterFn(filter *types.PaymentFilter) FilterFunc[*payment.Payment] {
	return func(_ context.Context, p *payment.Payment, _ interface{}) bool {
		if p.Status == types.StatusDeleted {
			return false
		}
		if filter == nil {
			return true
		}
		if filter.Kind != "" && p.Kind != filter.Kind {
			return false
		}
		if filter.PartyID != "" && p.PartyID != filter.PartyID {
			return false
		}
		if filter.StartDate != nil && p.PaymentDate.Before(*filter.StartDate) {
			return false
		}
		if filter.EndDate != nil && !p.PaymentDate.Before(*filter.EndDate) {
			return false
		}
		return true
	}
}

func paymentSortFn(i, j *payment.Payment) bool {
	if !i.PaymentDate.Equal(j.PaymentDate) {
		return i.PaymentDate.After(j.PaymentDate)
	}
	return i.ReceiptNumber > j.ReceiptNumber
}

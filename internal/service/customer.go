package service

import (
	"context"

	"github.com/samber/lo"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/api/dto"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/customer"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/validator"
)

type CustomerService interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error)
	GetCustomers(ctx context.Context, filter *types.PartyFilter) (*dto.ListCustomersResponse, error)
}

type customerService struct {
	ServiceParams
}

func NewCustomerService(params ServiceParams) CustomerService {
	return &customerService{
		ServiceParams: params,
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	code, err := NewSequenceService(s.ServiceParams).AllocateCode(ctx, types.SequenceCustomer)
	if err != nil {
		return nil, err
	}

	cust := req.ToCustomer(ctx, code)
	if err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		return s.CustomerRepo.Create(txCtx, cust)
	}); err != nil {
		return nil, err
	}

	s.Logger.Infow("created customer",
		"customer_id", cust.ID,
		"code", cust.Code,
	)
	s.publishChange(ctx, types.TopicCustomers, cust)
	return &dto.CustomerResponse{Customer: cust}, nil
}

func (s *customerService) GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	if id == "" {
		return nil, ierr.NewError("customer_id is required").
			WithHint("Customer ID is required").
			Mark(ierr.ErrValidation)
	}

	cust, err := readWithRetry(ctx, s.ServiceParams, func(ctx context.Context) (*customer.Customer, error) {
		return s.CustomerRepo.Get(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &dto.CustomerResponse{Customer: cust}, nil
}

func (s *customerService) GetCustomers(ctx context.Context, filter *types.PartyFilter) (*dto.ListCustomersResponse, error) {
	filter = normalizePartyFilter(filter)
	if err := validator.ValidateRequest(filter); err != nil {
		return nil, err
	}

	customers, err := readWithRetry(ctx, s.ServiceParams, func(ctx context.Context) ([]*customer.Customer, error) {
		return s.CustomerRepo.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}

	total, err := readWithRetry(ctx, s.ServiceParams, func(ctx context.Context) (int, error) {
		return s.CustomerRepo.Count(ctx, filter)
	})
	if err != nil {
		return nil, err
	}

	items := lo.Map(customers, func(c *customer.Customer, _ int) *dto.CustomerResponse {
		return &dto.CustomerResponse{Customer: c}
	})
	resp := types.NewListResponse(items, total, filter.QueryFilter)
	return &resp, nil
}

func normalizePartyFilter(filter *types.PartyFilter) *types.PartyFilter {
	if filter == nil {
		filter = &types.PartyFilter{}
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	return filter
}

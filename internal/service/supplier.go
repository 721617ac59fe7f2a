package service

import (
	"context"

	"github.com/samber/lo"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/api/dto"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/supplier"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/validator"
)

type SupplierService interface {
	CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error)
	GetSupplier(ctx context.Context, id string) (*dto.SupplierResponse, error)
	GetSuppliers(ctx context.Context, filter *types.PartyFilter) (*dto.ListSuppliersResponse, error)
}

type supplierService struct {
	ServiceParams
}

func NewSupplierService(params ServiceParams) SupplierService {
	return &supplierService{
		ServiceParams: params,
	}
}

func (s *supplierService) CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	code, err := NewSequenceService(s.ServiceParams).AllocateCode(ctx, types.SequenceSupplier)
	if err != nil {
		return nil, err
	}

	supp := req.ToSupplier(ctx, code)
	if err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		return s.SupplierRepo.Create(txCtx, supp)
	}); err != nil {
		return nil, err
	}

	s.Logger.Infow("created supplier",
		"supplier_id", supp.ID,
		"code", supp.Code,
	)
	s.publishChange(ctx, types.TopicSuppliers, supp)
	return &dto.SupplierResponse{Supplier: supp}, nil
}

func (s *supplierService) GetSupplier(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	if id == "" {
		return nil, ierr.NewError("supplier_id is required").
			WithHint("Supplier ID is required").
			Mark(ierr.ErrValidation)
	}

	supp, err := readWithRetry(ctx, s.ServiceParams, func(ctx context.Context) (*supplier.Supplier, error) {
		return s.SupplierRepo.Get(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &dto.SupplierResponse{Supplier: supp}, nil
}

func (s *supplierService) GetSuppliers(ctx context.Context, filter *types.PartyFilter) (*dto.ListSuppliersResponse, error) {
	filter = normalizePartyFilter(filter)
	if err := validator.ValidateRequest(filter); err != nil {
		return nil, err
	}

	suppliers, err := readWithRetry(ctx, s.ServiceParams, func(ctx context.Context) ([]*supplier.Supplier, error) {
		return s.SupplierRepo.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}

	total, err := readWithRetry(ctx, s.ServiceParams, func(ctx context.Context) (int, error) {
		return s.SupplierRepo.Count(ctx, filter)
	})
	if err != nil {
		return nil, err
	}

	items := lo.Map(suppliers, func(sp *supplier.Supplier, _ int) *dto.SupplierResponse {
		return &dto.SupplierResponse{Supplier: sp}
	})
	resp := types.NewListResponse(items, total, filter.QueryFilter)
	return &resp, nil
}

package service

import (
	"context"

	"github.com/samber/lo"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/api/dto"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/product"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/validator"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error)
	GetProducts(ctx context.Context, filter *types.ProductFilter) (*dto.ListProductsResponse, error)
}

type productService struct {
	ServiceParams
}

func NewProductService(params ServiceParams) ProductService {
	return &productService{
		ServiceParams: params,
	}
}

func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	code, err := NewSequenceService(s.ServiceParams).AllocateCode(ctx, types.SequenceProduct)
	if err != nil {
		return nil, err
	}

	prod := req.ToProduct(ctx, code)
	if err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		return s.ProductRepo.Create(txCtx, prod)
	}); err != nil {
		return nil, err
	}

	s.Logger.Infow("created product",
		"product_id", prod.ID,
		"code", prod.Code,
	)
	s.publishChange(ctx, types.TopicProducts, prod)
	return &dto.ProductResponse{Product: prod}, nil
}

func (s *productService) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if id == "" {
		return nil, ierr.NewError("product_id is required").
			WithHint("Product ID is required").
			Mark(ierr.ErrValidation)
	}

	prod, err := readWithRetry(ctx, s.ServiceParams, func(ctx context.Context) (*product.Product, error) {
		return s.ProductRepo.Get(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return &dto.ProductResponse{Product: prod}, nil
}

func (s *productService) GetProducts(ctx context.Context, filter *types.ProductFilter) (*dto.ListProductsResponse, error) {
	if filter == nil {
		filter = &types.ProductFilter{}
	}
	if filter.QueryFilter == nil {
		filter.QueryFilter = types.NewDefaultQueryFilter()
	}
	if err := validator.ValidateRequest(filter); err != nil {
		return nil, err
	}

	products, err := readWithRetry(ctx, s.ServiceParams, func(ctx context.Context) ([]*product.Product, error) {
		return s.ProductRepo.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}

	total, err := readWithRetry(ctx, s.ServiceParams, func(ctx context.Context) (int, error) {
		return s.ProductRepo.Count(ctx, filter)
	})
	if err != nil {
		return nil, err
	}

	items := lo.Map(products, func(p *product.Product, _ int) *dto.ProductResponse {
		return &dto.ProductResponse{Product: p}
	})
	resp := types.NewListResponse(items, total, filter.QueryFilter)
	return &resp, nil
}

package dto

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/product"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/validator"
)

type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required,max=255"`
	Category     string          `json:"category" validate:"omitempty,max=100"`
	Unit         string          `json:"unit" validate:"omitempty,max=32"`
	SaleRate     decimal.Decimal `json:"sale_rate"`
	PurchaseRate decimal.Decimal `json:"purchase_rate"`
}

type ProductResponse struct {
	*product.Product
}

// ListProductsResponse represents the response for listing products
type ListProductsResponse = types.ListResponse[*ProductResponse]

func (r *CreateProductRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := validateNonNegative("sale_rate", r.SaleRate); err != nil {
		return err
	}
	return validateNonNegative("purchase_rate", r.PurchaseRate)
}

func (r *CreateProductRequest) ToProduct(ctx context.Context, code string) *product.Product {
	unit := r.Unit
	if unit == "" {
		unit = "pkt"
	}
	return &product.Product{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PRODUCT),
		Code:         code,
		Name:         r.Name,
		Category:     r.Category,
		Unit:         unit,
		SaleRate:     r.SaleRate,
		PurchaseRate: r.PurchaseRate,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}
}

package dto

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/supplier"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/validator"
)

type CreateSupplierRequest struct {
	Name           string          `json:"name" validate:"required,max=255"`
	Phone          string          `json:"phone" validate:"omitempty,max=32"`
	Address        string          `json:"address" validate:"omitempty,max=255"`
	City           string          `json:"city" validate:"omitempty,max=100"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

type SupplierResponse struct {
	*supplier.Supplier
}

// ListSuppliersResponse represents the response for listing suppliers
type ListSuppliersResponse = types.ListResponse[*SupplierResponse]

func (r *CreateSupplierRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validator.ValidateRequest(r)
}

func (r *CreateSupplierRequest) ToSupplier(ctx context.Context, code string) *supplier.Supplier {
	return &supplier.Supplier{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUPPLIER),
		Code:           code,
		Name:           r.Name,
		Phone:          r.Phone,
		Address:        r.Address,
		City:           r.City,
		OpeningBalance: r.OpeningBalance,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
}

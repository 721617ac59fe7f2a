package dto

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/customer"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/validator"
)

type CreateCustomerRequest struct {
	Name           string          `json:"name" validate:"required,max=255"`
	Phone          string          `json:"phone" validate:"omitempty,max=32"`
	Address        string          `json:"address" validate:"omitempty,max=255"`
	City           string          `json:"city" validate:"omitempty,max=100"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

type CustomerResponse struct {
	*customer.Customer
}

// ListCustomersResponse represents the response for listing customers
type ListCustomersResponse = types.ListResponse[*CustomerResponse]

func (r *CreateCustomerRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	return validator.ValidateRequest(r)
}

// ToCustomer builds the customer that will be stored under code
func (r *CreateCustomerRequest) ToCustomer(ctx context.Context, code string) *customer.Customer {
	return &customer.Customer{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		Code:           code,
		Name:           r.Name,
		Phone:          r.Phone,
		Address:        r.Address,
		City:           r.City,
		OpeningBalance: r.OpeningBalance,
		BaseModel:      types.GetDefaultBaseModel(ctx),
	}
}

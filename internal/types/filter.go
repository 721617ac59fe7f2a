package types

import (
	"time"

	"github.com/samber/lo"
)

const (
	FILTER_DEFAULT_LIMIT = 50
	FILTER_MAX_LIMIT     = 1000

	OrderDesc = "desc"
	OrderAsc  = "asc"
)

// BaseFilter defines common filtering capabilities
type BaseFilter interface {
	GetLimit() int
	GetOffset() int
	IsUnlimited() bool
}

// QueryFilter represents a generic query filter with optional fields
type QueryFilter struct {
	Limit  *int `json:"limit,omitempty" form:"limit" validate:"omitempty,min=1,max=1000"`
	Offset *int `json:"offset,omitempty" form:"offset" validate:"omitempty,min=0"`
}

// NewDefaultQueryFilter defines default values for query filters
func NewDefaultQueryFilter() *QueryFilter {
	return &QueryFilter{
		Limit:  lo.ToPtr(FILTER_DEFAULT_LIMIT),
		Offset: lo.ToPtr(0),
	}
}

// NewNoLimitQueryFilter returns a filter that selects everything
func NewNoLimitQueryFilter() *QueryFilter {
	return &QueryFilter{}
}

func (f *QueryFilter) GetLimit() int {
	if f == nil || f.Limit == nil {
		return FILTER_DEFAULT_LIMIT
	}
	return *f.Limit
}

func (f *QueryFilter) GetOffset() int {
	if f == nil || f.Offset == nil {
		return 0
	}
	return *f.Offset
}

// IsUnlimited is true when no limit was requested
func (f *QueryFilter) IsUnlimited() bool {
	return f == nil || f.Limit == nil
}

// PartyFilter is used for listing customers and suppliers
type PartyFilter struct {
	*QueryFilter
	// Search matches name or code, case insensitive
	Search string `json:"search,omitempty" form:"search"`
}

// ProductFilter filters the product catalogue
type ProductFilter struct {
	*QueryFilter
	Search   string `json:"search,omitempty" form:"search"`
	Category string `json:"category,omitempty" form:"category"`
}

// InvoiceFilter selects invoices by kind and business date. StartDate is
// inclusive, EndDate is exclusive.
type InvoiceFilter struct {
	*QueryFilter
	Kind      InvoiceKind `json:"kind,omitempty" form:"kind" validate:"omitempty,oneof=sale purchase"`
	StartDate *time.Time  `json:"start_date,omitempty" form:"start_date"`
	EndDate   *time.Time  `json:"end_date,omitempty" form:"end_date"`
	PartyID   string      `json:"party_id,omitempty" form:"party_id"`
}

// PaymentFilter selects receipts and payments
type PaymentFilter struct {
	*QueryFilter
	Kind      PaymentKind `json:"kind,omitempty" form:"kind" validate:"omitempty,oneof=receipt payment"`
	PartyID   string      `json:"party_id,omitempty" form:"party_id"`
	StartDate *time.Time  `json:"start_date,omitempty" form:"start_date"`
	EndDate   *time.Time  `json:"end_date,omitempty" form:"end_date"`
}

// StockFilter selects ledger entries
type StockFilter struct {
	*QueryFilter
	ProductIDs  []string `json:"product_ids,omitempty" form:"product_ids"`
	StoreIDs    []string `json:"store_ids,omitempty" form:"store_ids"`
	NonZeroOnly bool     `json:"non_zero_only,omitempty" form:"non_zero_only"`
}

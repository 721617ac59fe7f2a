package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/validator"
)

// MonthlySalesRequest asks for totals of the trailing Months calendar
// months ending with the month of AsOf (today when unset).
type MonthlySalesRequest struct {
	Months int               `json:"months,omitempty" form:"months" validate:"omitempty,min=1,max=120"`
	Kind   types.InvoiceKind `json:"kind,omitempty" form:"kind" validate:"omitempty,oneof=sale purchase"`
	AsOf   *time.Time        `json:"as_of,omitempty" form:"as_of" time_format:"2006-01-02" time_utc:"1"`
}

func (r *MonthlySalesRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// MonthlyTotal is one calendar month of a monthly report
type MonthlyTotal struct {
	// Key is the month as 2006-01
	Key   string          `json:"key"`
	Month string          `json:"month"`
	Year  int             `json:"year"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

type MonthlySalesResponse struct {
	Kind   types.InvoiceKind `json:"kind"`
	Months []MonthlyTotal    `json:"months"`
}

// LedgerListingRequest filters invoices for the ledger view. From and To
// are business dates and both are inclusive.
type LedgerListingRequest struct {
	Kind types.InvoiceKind `json:"kind,omitempty" form:"kind" validate:"omitempty,oneof=sale purchase"`
	From *time.Time        `json:"from,omitempty" form:"from" time_format:"2006-01-02" time_utc:"1"`
	To   *time.Time        `json:"to,omitempty" form:"to" time_format:"2006-01-02" time_utc:"1"`
	// Party matches the party name, case insensitive substring
	Party string `json:"party,omitempty" form:"party" validate:"omitempty,max=255"`
	// Product matches any line item product name, case insensitive substring
	Product string `json:"product,omitempty" form:"product" validate:"omitempty,max=255"`
	// Store matches any line item store exactly
	Store string `json:"store,omitempty" form:"store" validate:"omitempty,max=64"`
}

func (r *LedgerListingRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return validateRange(r.From, r.To)
}

type LedgerRow struct {
	InvoiceID     string            `json:"invoice_id"`
	Kind          types.InvoiceKind `json:"kind"`
	Date          string            `json:"date"`
	InvoiceNumber string            `json:"invoice_number"`
	PartyName     string            `json:"party_name"`
	TotalAmount   decimal.Decimal   `json:"total_amount"`
	NetAmount     decimal.Decimal   `json:"net_amount"`
}

type LedgerListingResponse struct {
	Items []LedgerRow `json:"items"`
	Total int         `json:"total"`
}

// LowMovementRequest ranks the slowest moving products over sale
// invoices dated From to To, both inclusive and both optional.
type LowMovementRequest struct {
	Limit int        `json:"limit,omitempty" form:"limit" validate:"omitempty,min=1,max=1000"`
	From  *time.Time `json:"from,omitempty" form:"from" time_format:"2006-01-02" time_utc:"1"`
	To    *time.Time `json:"to,omitempty" form:"to" time_format:"2006-01-02" time_utc:"1"`
}

func (r *LowMovementRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return validateRange(r.From, r.To)
}

type LowMovementItem struct {
	Rank        int             `json:"rank"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Units       decimal.Decimal `json:"units"`
	Revenue     decimal.Decimal `json:"revenue"`
}

type LowMovementResponse struct {
	Items []LowMovementItem `json:"items"`
}

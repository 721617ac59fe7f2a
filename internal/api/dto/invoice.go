package dto

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/inventory"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/invoice"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/validator"
)

type CreateInvoiceRequest struct {
	Kind        types.InvoiceKind `json:"kind" validate:"required,oneof=sale purchase"`
	InvoiceDate *time.Time        `json:"invoice_date,omitempty"`
	PartyID     string            `json:"party_id" validate:"omitempty,max=64"`
	PartyName   string            `json:"party_name" validate:"omitempty,max=255"`
	Items       []LineItemRequest `json:"items" validate:"required,min=1,dive"`
	Discount    decimal.Decimal   `json:"discount"`
	Notes       string            `json:"notes" validate:"omitempty,max=1000"`
}

// LineItemRequest is one product line. Amount defaults to pkt x rate.
type LineItemRequest struct {
	ProductID   string           `json:"product_id" validate:"required,max=64"`
	ProductName string           `json:"product_name" validate:"omitempty,max=255"`
	StoreID     string           `json:"store_id" validate:"required,max=64"`
	Pkt         int64            `json:"pkt" validate:"min=0"`
	WeightKg    decimal.Decimal  `json:"weight_kg"`
	Rate        decimal.Decimal  `json:"rate"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
}

type InvoiceResponse struct {
	*invoice.Invoice
}

// ListInvoicesResponse represents the response for listing invoices
type ListInvoicesResponse = types.ListResponse[*InvoiceResponse]

func (r *CreateInvoiceRequest) Validate() error {
	r.PartyName = strings.TrimSpace(r.PartyName)
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.PartyID == "" && r.PartyName == "" {
		return ierr.NewError("party is required").
			WithHint("Either party_id or party_name is required").
			Mark(ierr.ErrValidation)
	}
	if err := validateNonNegative("discount", r.Discount); err != nil {
		return err
	}

	for i, item := range r.Items {
		if item.Pkt == 0 && item.WeightKg.IsZero() {
			return ierr.NewError("empty invoice line").
				WithHintf("Line %d must move a quantity or a weight", i+1).
				Mark(ierr.ErrValidation)
		}
		if err := validateNonNegative(fmt.Sprintf("items[%d].weight_kg", i), item.WeightKg); err != nil {
			return err
		}
		if err := validateWeightScale(fmt.Sprintf("items[%d].weight_kg", i), item.WeightKg); err != nil {
			return err
		}
		if err := validateNonNegative(fmt.Sprintf("items[%d].rate", i), item.Rate); err != nil {
			return err
		}
		if item.Amount != nil {
			if err := validateNonNegative(fmt.Sprintf("items[%d].amount", i), *item.Amount); err != nil {
				return err
			}
		}
	}
	return nil
}

// ToInvoice builds the invoice that will be stored under number, with totals computed
func (r *CreateInvoiceRequest) ToInvoice(ctx context.Context, number string) *invoice.Invoice {
	inv := &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		Kind:          r.Kind,
		InvoiceNumber: number,
		InvoiceDate:   dateOrNow(r.InvoiceDate),
		PartyID:       r.PartyID,
		PartyName:     r.PartyName,
		Discount:      types.NewNumber(r.Discount),
		Notes:         r.Notes,
		BaseModel:     types.GetDefaultBaseModel(ctx),
	}

	inv.Items = lo.Map(r.Items, func(item LineItemRequest, _ int) invoice.LineItem {
		li := invoice.LineItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			StoreID:     item.StoreID,
			Pkt:         types.NumberFromInt(item.Pkt),
			WeightKg:    types.NewNumber(item.WeightKg),
			Rate:        types.NewNumber(item.Rate),
		}
		if item.Amount != nil {
			li.Amount = types.NewNumber(*item.Amount)
		}
		return li
	})
	inv.ComputeTotals()
	return inv
}

// ToAdjustments returns the ledger movement of every line: sales remove
// stock, purchases add it.
func (r *CreateInvoiceRequest) ToAdjustments(number string) []inventory.Adjustment {
	return lo.Map(r.Items, func(item LineItemRequest, _ int) inventory.Adjustment {
		adj := inventory.Adjustment{
			ProductID:     item.ProductID,
			StoreID:       item.StoreID,
			DeltaQuantity: item.Pkt,
			DeltaWeight:   item.WeightKg,
			Reason:        fmt.Sprintf("%s invoice %s", r.Kind, number),
		}
		if r.Kind == types.InvoiceKindSale {
			return adj.Invert()
		}
		return adj
	})
}

// InvoiceCreatedEvent is published on the invoices topic
type InvoiceCreatedEvent struct {
	ID            string            `json:"id"`
	Kind          types.InvoiceKind `json:"kind"`
	InvoiceNumber string            `json:"invoice_number"`
	PartyName     string            `json:"party_name"`
	NetAmount     decimal.Decimal   `json:"net_amount"`
}

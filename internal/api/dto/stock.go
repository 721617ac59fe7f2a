package dto

import (
	"github.com/shopspring/decimal"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/inventory"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/validator"
)

// AdjustStockRequest moves stock of one product in one store. Positive
// deltas add stock, negative deltas remove it.
type AdjustStockRequest struct {
	ProductID     string          `json:"product_id" validate:"required,max=64"`
	StoreID       string          `json:"store_id" validate:"required,max=64"`
	DeltaQuantity int64           `json:"delta_quantity"`
	DeltaWeight   decimal.Decimal `json:"delta_weight"`
	Reason        string          `json:"reason" validate:"omitempty,max=255"`
}

func (r *AdjustStockRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.DeltaQuantity == 0 && r.DeltaWeight.IsZero() {
		return ierr.NewError("empty stock adjustment").
			WithHint("Either delta_quantity or delta_weight must be non-zero").
			Mark(ierr.ErrValidation)
	}
	return validateWeightScale("delta_weight", r.DeltaWeight)
}

func (r *AdjustStockRequest) ToAdjustment() inventory.Adjustment {
	return inventory.Adjustment{
		ProductID:     r.ProductID,
		StoreID:       r.StoreID,
		DeltaQuantity: r.DeltaQuantity,
		DeltaWeight:   r.DeltaWeight,
		Reason:        r.Reason,
	}
}

type StockEntryResponse struct {
	*inventory.StockEntry
}

// ListStockResponse represents the response for listing stock entries
type ListStockResponse = types.ListResponse[*StockEntryResponse]

// StockChangedEvent is published on the stock topic after an adjustment
type StockChangedEvent struct {
	ProductID     string          `json:"product_id"`
	StoreID       string          `json:"store_id"`
	QuantityPkts  int64           `json:"quantity_pkts"`
	WeightKg      decimal.Decimal `json:"weight_kg"`
	DeltaQuantity int64           `json:"delta_quantity"`
	DeltaWeight   decimal.Decimal `json:"delta_weight"`
	Source        string          `json:"source"`
}

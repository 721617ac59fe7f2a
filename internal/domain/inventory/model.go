package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockEntry is the authoritative on-hand figure for one product in one
// store. There is at most one entry per (ProductID, StoreID) and neither
// figure ever goes negative.
type StockEntry struct {
	ProductID    string          `db:"product_id" json:"product_id"`
	StoreID      string          `db:"store_id" json:"store_id"`
	QuantityPkts int64           `db:"quantity_pkts" json:"quantity_pkts"`
	WeightKg     decimal.Decimal `db:"weight_kg" json:"weight_kg"`
	Notes        string          `db:"notes" json:"notes"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// Adjustment is a signed change to one entry. It is not persisted.
type Adjustment struct {
	ProductID     string
	StoreID       string
	DeltaQuantity int64
	DeltaWeight   decimal.Decimal
	Reason        string
}

// HasNegative reports whether either delta removes stock
func (a Adjustment) HasNegative() bool {
	return a.DeltaQuantity < 0 || a.DeltaWeight.IsNegative()
}

// Invert returns the adjustment that undoes a
func (a Adjustment) Invert() Adjustment {
	a.DeltaQuantity = -a.DeltaQuantity
	a.DeltaWeight = a.DeltaWeight.Neg()
	return a
}

// FitsOn reports whether applying a to e keeps both figures non-negative
func (a Adjustment) FitsOn(e *StockEntry) bool {
	return e.QuantityPkts+a.DeltaQuantity >= 0 &&
		!e.WeightKg.Add(a.DeltaWeight).IsNegative()
}

// NewEntry builds the first entry for a pair from its opening adjustment
func (a Adjustment) NewEntry(now time.Time) *StockEntry {
	return &StockEntry{
		ProductID:    a.ProductID,
		StoreID:      a.StoreID,
		QuantityPkts: a.DeltaQuantity,
		WeightKg:     a.DeltaWeight,
		Notes:        a.Reason,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

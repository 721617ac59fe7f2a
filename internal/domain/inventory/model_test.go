package inventory

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAdjustmentFitsOn(t *testing.T) {
	entry := &StockEntry{QuantityPkts: 5, WeightKg: decimal.NewFromInt(10)}

	assert.True(t, Adjustment{DeltaQuantity: -5, DeltaWeight: decimal.NewFromInt(-10)}.FitsOn(entry))
	assert.False(t, Adjustment{DeltaQuantity: -6}.FitsOn(entry))
	assert.False(t, Adjustment{DeltaWeight: decimal.RequireFromString("-10.001")}.FitsOn(entry))
}

func TestAdjustmentHasNegative(t *testing.T) {
	assert.False(t, Adjustment{DeltaQuantity: 3, DeltaWeight: decimal.NewFromInt(1)}.HasNegative())
	assert.True(t, Adjustment{DeltaQuantity: -1}.HasNegative())
	assert.True(t, Adjustment{DeltaWeight: decimal.NewFromFloat(-0.5)}.HasNegative())
}

func TestAdjustmentInvertAndNewEntry(t *testing.T) {
	adj := Adjustment{ProductID: "p", StoreID: "s", DeltaQuantity: 4, DeltaWeight: decimal.NewFromInt(2), Reason: "opening"}
	inv := adj.Invert()
	assert.Equal(t, int64(-4), inv.DeltaQuantity)
	assert.True(t, inv.DeltaWeight.Equal(decimal.NewFromInt(-2)))

	now := time.Now().UTC()
	e := adj.NewEntry(now)
	assert.Equal(t, "p", e.ProductID)
	assert.Equal(t, int64(4), e.QuantityPkts)
	assert.Equal(t, "opening", e.Notes)
	assert.Equal(t, now, e.CreatedAt)
}

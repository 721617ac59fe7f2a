package product

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

// Product is a catalogue item. Stock is tracked separately per store in the inventory ledger.
type Product struct {
	ID           string          `db:"id" json:"id"`
	Code         string          `db:"code" json:"code"`
	Name         string          `db:"name" json:"name"`
	Category     string          `db:"category" json:"category"`
	Unit         string          `db:"unit" json:"unit"`
	SaleRate     decimal.Decimal `db:"sale_rate" json:"sale_rate"`
	PurchaseRate decimal.Decimal `db:"purchase_rate" json:"purchase_rate"`
	types.BaseModel
}

type Repository interface {
	Create(ctx context.Context, product *Product) error
	Get(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context, filter *types.ProductFilter) ([]*Product, error)
	Count(ctx context.Context, filter *types.ProductFilter) (int, error)
}

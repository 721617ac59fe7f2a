package supplier

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

// Supplier is a party we buy from
type Supplier struct {
	ID             string          `db:"id" json:"id"`
	Code           string          `db:"code" json:"code"`
	Name           string          `db:"name" json:"name"`
	Phone          string          `db:"phone" json:"phone"`
	Address        string          `db:"address" json:"address"`
	City           string          `db:"city" json:"city"`
	OpeningBalance decimal.Decimal `db:"opening_balance" json:"opening_balance"`
	types.BaseModel
}

// Repository defines the interface for supplier data access
type Repository interface {
	Create(ctx context.Context, supplier *Supplier) error
	Get(ctx context.Context, id string) (*Supplier, error)
	List(ctx context.Context, filter *types.PartyFilter) ([]*Supplier, error)
	Count(ctx context.Context, filter *types.PartyFilter) (int, error)
}

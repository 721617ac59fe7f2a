package customer

import (
	"github.com/shopspring/decimal"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

// Customer is a party we sell to. Code is allocated from the customer counter at creation.
type Customer struct {
	ID             string          `db:"id" json:"id"`
	Code           string          `db:"code" json:"code"`
	Name           string          `db:"name" json:"name"`
	Phone          string          `db:"phone" json:"phone"`
	Address        string          `db:"address" json:"address"`
	City           string          `db:"city" json:"city"`
	OpeningBalance decimal.Decimal `db:"opening_balance" json:"opening_balance"`
	types.BaseModel
}

package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

// Payment records money received from a customer (receipt) or paid to a
// supplier (payment). ReceiptNumber is always allocated; ChequeNumber only
// when the method is cheque.
type Payment struct {
	ID            string              `db:"id" json:"id"`
	Kind          types.PaymentKind   `db:"kind" json:"kind"`
	ReceiptNumber string              `db:"receipt_number" json:"receipt_number"`
	ChequeNumber  *string             `db:"cheque_number" json:"cheque_number,omitempty"`
	PartyType     types.PartyType     `db:"party_type" json:"party_type"`
	PartyID       string              `db:"party_id" json:"party_id"`
	PartyName     string              `db:"party_name" json:"party_name"`
	Method        types.PaymentMethod `db:"method" json:"method"`
	BankName      string              `db:"bank_name" json:"bank_name"`
	Amount        decimal.Decimal     `db:"amount" json:"amount"`
	PaymentDate   time.Time           `db:"payment_date" json:"payment_date"`
	Notes         string              `db:"notes" json:"notes"`
	types.BaseModel
}

type Repository interface {
	Create(ctx context.Context, payment *Payment) error
	Get(ctx context.Context, id string) (*Payment, error)
	List(ctx context.Context, filter *types.PaymentFilter) ([]*Payment, error)
	Count(ctx context.Context, filter *types.PaymentFilter) (int, error)
}

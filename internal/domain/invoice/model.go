package invoice

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

// Invoice is a sale or purchase document. Line items are stored as a JSON
// document, so their figures are lenient numbers.
type Invoice struct {
	ID            string            `db:"id" json:"id"`
	Kind          types.InvoiceKind `db:"kind" json:"kind"`
	InvoiceNumber string            `db:"invoice_number" json:"invoice_number"`
	InvoiceDate   time.Time         `db:"invoice_date" json:"invoice_date"`
	PartyID       string            `db:"party_id" json:"party_id"`
	PartyName     string            `db:"party_name" json:"party_name"`
	Items         LineItems         `db:"items" json:"items"`
	TotalAmount   types.Number      `db:"total_amount" json:"total_amount"`
	Discount      types.Number      `db:"discount" json:"discount"`
	NetAmount     types.Number      `db:"net_amount" json:"net_amount"`
	Notes         string            `db:"notes" json:"notes"`
	types.BaseModel
}

// LineItem is one product line on an invoice
type LineItem struct {
	ProductID   string       `json:"product_id"`
	ProductName string       `json:"product_name"`
	StoreID     string       `json:"store_id"`
	Pkt         types.Number `json:"pkt"`
	WeightKg    types.Number `json:"weight_kg"`
	Rate        types.Number `json:"rate"`
	Amount      types.Number `json:"amount"`
}

// Revenue is quantity times rate, the figure movement reports rank on
func (li LineItem) Revenue() decimal.Decimal {
	return li.Pkt.Mul(li.Rate.Decimal)
}

// ProductKey identifies the product of a line, falling back to its name
func (li LineItem) ProductKey() string {
	if li.ProductID != "" {
		return li.ProductID
	}
	return strings.ToLower(strings.TrimSpace(li.ProductName))
}

// LineItems is the JSONB items column
type LineItems []LineItem

// Scan implements the sql.Scanner interface for LineItems. A document that
// cannot be decoded reads as having no items.
func (l *LineItems) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*l = LineItems{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		*l = LineItems{}
		return nil
	}

	var items LineItems
	if err := json.Unmarshal(raw, &items); err != nil {
		*l = LineItems{}
		return nil
	}
	*l = items
	return nil
}

// Value implements the driver.Valuer interface for LineItems
func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// ComputeTotals fills missing line amounts from pkt x rate and derives the
// invoice totals. An explicit line amount is kept as entered.
func (inv *Invoice) ComputeTotals() {
	total := decimal.Zero
	for i := range inv.Items {
		if inv.Items[i].Amount.IsZero() {
			inv.Items[i].Amount = types.NewNumber(inv.Items[i].Revenue())
		}
		total = total.Add(inv.Items[i].Amount.Decimal)
	}
	inv.TotalAmount = types.NewNumber(total)
	inv.NetAmount = types.NewNumber(total.Sub(inv.Discount.Decimal))
}

// HasLine reports whether a single line matches both conditions: a product
// name containing productNeedle, case insensitive, and exactly storeID.
// An empty condition matches every line.
func (inv *Invoice) HasLine(productNeedle, storeID string) bool {
	productNeedle = strings.ToLower(productNeedle)
	for _, li := range inv.Items {
		if productNeedle != "" && !strings.Contains(strings.ToLower(li.ProductName), productNeedle) {
			continue
		}
		if storeID != "" && li.StoreID != storeID {
			continue
		}
		return true
	}
	return false
}

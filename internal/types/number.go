package types

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Number is a lenient decimal used for figures inside stored documents.
// Missing, null or malformed values decode to zero instead of failing, so a
// single bad line item never breaks a report.
type Number struct {
	decimal.Decimal
}

func NewNumber(d decimal.Decimal) Number {
	return Number{Decimal: d}
}

func NumberFromInt(i int64) Number {
	return Number{Decimal: decimal.NewFromInt(i)}
}

func NumberFromFloat(f float64) Number {
	return Number{Decimal: decimal.NewFromFloat(f)}
}

// ParseNumber parses s, treating anything unparsable as zero
func ParseNumber(s string) Number {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return Number{Decimal: decimal.Zero}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Number{Decimal: decimal.Zero}
	}
	return Number{Decimal: d}
}

func (n Number) MarshalJSON() ([]byte, error) {
	return []byte(n.Decimal.String()), nil
}

func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		n.Decimal = decimal.Zero
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			n.Decimal = decimal.Zero
			return nil
		}
		*n = ParseNumber(s)
		return nil
	}

	*n = ParseNumber(string(data))
	return nil
}

// Scan implements the sql.Scanner interface for Number
func (n *Number) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		n.Decimal = decimal.Zero
	case []byte:
		*n = ParseNumber(string(v))
	case string:
		*n = ParseNumber(v)
	case int64:
		n.Decimal = decimal.NewFromInt(v)
	case float64:
		n.Decimal = decimal.NewFromFloat(v)
	default:
		*n = ParseNumber(fmt.Sprintf("%v", v))
	}
	return nil
}

// Value implements the driver.Valuer interface for Number
func (n Number) Value() (driver.Value, error) {
	return n.Decimal.String(), nil
}

package sequence

import (
	"fmt"
	"strings"
	"time"
)

// Counter is a named, monotonically increasing sequence. Counters are created
// lazily by the first allocation and never deleted.
type Counter struct {
	Name      string    `db:"name" json:"name"`
	Value     int64     `db:"value" json:"value"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Template turns an allocated value into a human readable document code
// such as RC-000001 or CUS-2610-0001.
type Template struct {
	Prefix string
	// Width is the zero padded width of the numeric part
	Width int
	// DateLayout, when set, inserts the allocation date between prefix and number
	DateLayout string
}

// Format renders value using the template. at is only used when DateLayout is set.
func (t Template) Format(value int64, at time.Time) string {
	width := t.Width
	if width <= 0 {
		width = 1
	}

	parts := make([]string, 0, 3)
	if t.Prefix != "" {
		parts = append(parts, t.Prefix)
	}
	if t.DateLayout != "" {
		parts = append(parts, at.Format(t.DateLayout))
	}
	parts = append(parts, fmt.Sprintf("%0*d", width, value))

	return strings.Join(parts, "-")
}

// DefaultTemplates are the code formats used when configuration does not override them
var DefaultTemplates = map[string]Template{
	"customer":         {Prefix: "CUS", Width: 4, DateLayout: "0601"},
	"supplier":         {Prefix: "SUP", Width: 5},
	"product":          {Prefix: "PRD", Width: 5},
	"sale_invoice":     {Prefix: "SI", Width: 6},
	"purchase_invoice": {Prefix: "PI", Width: 6},
	"receipt":          {Prefix: "RC", Width: 6},
	"cheque":           {Prefix: "CQ", Width: 6},
}

// TemplateFor returns the template for a counter, falling back to the
// upper-cased counter name as prefix.
func TemplateFor(name string, overrides map[string]Template) Template {
	if t, ok := overrides[name]; ok {
		return t
	}
	if t, ok := DefaultTemplates[name]; ok {
		return t
	}
	return Template{Prefix: strings.ToUpper(name), Width: 6}
}

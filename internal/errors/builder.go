package errors

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
)

// detailsPrefix tags the safe-detail payloads written by WithReportableDetails
const detailsPrefix = "__json__:"

// ErrorBuilder chains context onto an error. It does not implement error
// itself: finish the chain with Mark, or Error for an unmarked error.
type ErrorBuilder struct {
	err error
}

// NewError starts a new error builder chain
func NewError(msg string) *ErrorBuilder {
	return &ErrorBuilder{err: errors.New(msg)}
}

// WithError starts a builder chain with an existing error
func WithError(err error) *ErrorBuilder {
	return &ErrorBuilder{err: err}
}

// WithMessage prefixes the internal message, never shown to clients
func (b *ErrorBuilder) WithMessage(msg string) *ErrorBuilder {
	b.err = errors.WithMessage(b.err, msg)
	return b
}

// WithHint sets the message rendered to API clients
func (b *ErrorBuilder) WithHint(hint string) *ErrorBuilder {
	b.err = errors.WithHint(b.err, hint)
	return b
}

func (b *ErrorBuilder) WithHintf(format string, args ...any) *ErrorBuilder {
	b.err = errors.WithHintf(b.err, format, args...)
	return b
}

// WithReportableDetails attaches details that are safe to return in the
// error response and to send to Sentry. Details that cannot be encoded are dropped.
func (b *ErrorBuilder) WithReportableDetails(details map[string]any) *ErrorBuilder {
	if len(details) == 0 {
		return b
	}
	marshaled, err := json.Marshal(details)
	if err != nil {
		return b
	}
	b.err = errors.WithSafeDetails(b.err, detailsPrefix+"%s", errors.Safe(string(marshaled)))
	return b
}

// WithStockDetails reports the ledger entry an adjustment was aimed at,
// together with any figures describing the rejected change
func (b *ErrorBuilder) WithStockDetails(productID, storeID string, figures map[string]any) *ErrorBuilder {
	details := make(map[string]any, len(figures)+2)
	for k, v := range figures {
		details[k] = v
	}
	details["product_id"] = productID
	details["store_id"] = storeID
	return b.WithReportableDetails(details)
}

// WithField reports the request field that failed validation and its value
func (b *ErrorBuilder) WithField(field string, value any) *ErrorBuilder {
	return b.WithReportableDetails(map[string]any{"field": field, "value": value})
}

// Mark tags the error with a sentinel; it must be the last call in the chain
func (b *ErrorBuilder) Mark(reference error) error {
	b.err = errors.Mark(b.err, reference)
	return b.err
}

// Error returns the built error without marking it
func (b *ErrorBuilder) Error() error {
	return b.err
}

// ReportableDetails merges every detail attached with WithReportableDetails
// anywhere in the chain. Outer wrappers win on key conflicts.
func ReportableDetails(err error) map[string]any {
	details := make(map[string]any)
	all := errors.GetAllSafeDetails(err)
	// GetAllSafeDetails walks from the outermost layer inwards
	for i := len(all) - 1; i >= 0; i-- {
		for _, payload := range all[i].SafeDetails {
			raw, ok := strings.CutPrefix(payload, detailsPrefix)
			if !ok {
				continue
			}
			var decoded map[string]any
			if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
				continue
			}
			for k, v := range decoded {
				details[k] = v
			}
		}
	}
	return details
}

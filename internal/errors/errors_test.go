package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "not_found",
			err:  NewError("missing").Mark(ErrNotFound),
			want: http.StatusNotFound,
		},
		{
			name: "insufficient_stock",
			err:  NewError("short").Mark(ErrInsufficientStock),
			want: http.StatusConflict,
		},
		{
			name: "invalid_initial_adjustment",
			err:  NewError("negative").Mark(ErrInvalidInitialAdjustment),
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "allocation_failed_wins_over_database",
			err: WithError(NewError("conn reset").Mark(ErrDatabase)).
				Mark(ErrAllocationFailed),
			want: http.StatusServiceUnavailable,
		},
		{
			name: "plain_error",
			err:  fmt.Errorf("boom"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromErr(tt.err))
		})
	}
}

func TestMarksSurviveWrapping(t *testing.T) {
	base := NewError("dial tcp: connection refused").Mark(ErrStoreUnavailable)
	wrapped := WithError(base).
		WithHint("Could not allocate a document number").
		Mark(ErrAllocationFailed)

	assert.True(t, IsAllocationFailed(wrapped))
	assert.True(t, IsStoreUnavailable(wrapped))
	assert.False(t, IsInsufficientStock(wrapped))
}

func TestReportableDetailsMergeAcrossWrapping(t *testing.T) {
	inner := NewError("insufficient stock").
		WithStockDetails("p1", "s1", map[string]any{"requested_quantity": -6, "available_quantity": 5}).
		Mark(ErrInsufficientStock)
	outer := WithError(inner).
		WithReportableDetails(map[string]any{"invoice_number": "SI-000001", "store_id": "s9"}).
		Mark(ErrValidation)

	details := ReportableDetails(outer)
	assert.Equal(t, "p1", details["product_id"])
	assert.Equal(t, "s9", details["store_id"])
	assert.Equal(t, float64(5), details["available_quantity"])
	assert.Equal(t, "SI-000001", details["invoice_number"])
}

func TestWithFieldAndEmptyDetails(t *testing.T) {
	err := NewError("discount cannot be negative").WithField("discount", "-1").Mark(ErrValidation)
	assert.Equal(t, map[string]any{"field": "discount", "value": "-1"}, ReportableDetails(err))

	plain := NewError("boom").WithReportableDetails(nil).Mark(ErrSystem)
	assert.Empty(t, ReportableDetails(plain))
	assert.Empty(t, ReportableDetails(fmt.Errorf("plain")))
}

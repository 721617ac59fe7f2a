package types

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumberUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "integer", input: `5`, want: "5"},
		{name: "fraction", input: `12.75`, want: "12.75"},
		{name: "numeric_string", input: `"42.5"`, want: "42.5"},
		{name: "thousands_separator", input: `"1,200"`, want: "1200"},
		{name: "null", input: `null`, want: "0"},
		{name: "empty_string", input: `""`, want: "0"},
		{name: "garbage_string", input: `"abc"`, want: "0"},
		{name: "boolean", input: `true`, want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n Number
			require.NoError(t, json.Unmarshal([]byte(tt.input), &n))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(n.Decimal), "got %s", n.String())
		})
	}
}

func TestNumberMissingFieldIsZero(t *testing.T) {
	var item struct {
		Pkt  Number `json:"pkt"`
		Rate Number `json:"rate"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"pkt": "oops"}`), &item))
	assert.True(t, item.Pkt.IsZero())
	assert.True(t, item.Rate.IsZero())
}

func TestNumberMarshalJSON(t *testing.T) {
	out, err := json.Marshal(struct {
		Amount Number `json:"amount"`
	}{Amount: NumberFromFloat(10.5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount": 10.5}`, string(out))
}

func TestNumberScan(t *testing.T) {
	var n Number
	require.NoError(t, n.Scan(nil))
	assert.True(t, n.IsZero())

	require.NoError(t, n.Scan([]byte("19.90")))
	assert.Equal(t, "19.9", n.String())

	require.NoError(t, n.Scan(int64(3)))
	assert.Equal(t, "3", n.String())
}

package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyPrefix(t *testing.T) {
	assert.Equal(t, "report:v1", KeyPrefix("report:v1::monthly:sale:12:2025-11"))
	assert.Equal(t, "sequence:v1", KeyPrefix("sequence:v1::customer"))
	assert.Equal(t, "plain", KeyPrefix("plain"))
	assert.Equal(t, "a:b", KeyPrefix("a:b"))
}

func TestSpansWithoutHubAreNil(t *testing.T) {
	ctx := context.Background()
	span := StartRepositorySpan(ctx, "stock", "apply_delta", nil)
	assert.Nil(t, span)
	assert.Nil(t, StartCacheSpan(ctx, "inmemory", "get", "report:v1::x"))

	assert.NotPanics(t, func() {
		SetSpanError(span, errors.New("boom"))
		SetSpanSuccess(span)
		FinishSpan(span)
	})
}

// Package tracing wraps sentry spans for the storage layers. Every helper
// accepts a nil span so callers never need to check whether Sentry is on.
package tracing

import (
	"context"

	"github.com/getsentry/sentry-go"
)

const (
	OpPostgres = "db.postgres"
	OpCache    = "db.cache"
)

// StartRepositorySpan opens a span for one postgres repository call.
// Returns nil if Sentry is not available in the context.
func StartRepositorySpan(ctx context.Context, repository, operation string, params map[string]interface{}) *sentry.Span {
	return start(ctx, OpPostgres, "repository", repository, operation, params)
}

// StartCacheSpan opens a span for one cache call, tagged with the key's
// entity prefix so report and sequence lookups can be told apart.
func StartCacheSpan(ctx context.Context, cache, operation, key string) *sentry.Span {
	span := start(ctx, OpCache, "cache", cache, operation, map[string]interface{}{"key": key})
	if span != nil {
		span.SetTag("cache.prefix", KeyPrefix(key))
	}
	return span
}

func start(ctx context.Context, op, layer, component, operation string, params map[string]interface{}) *sentry.Span {
	if sentry.GetHubFromContext(ctx) == nil {
		return nil
	}

	name := layer + "." + component + "." + operation
	span := sentry.StartSpan(ctx, name)
	if span == nil {
		return nil
	}
	span.Description = name
	span.Op = op
	span.SetData(layer, component)
	span.SetData("operation", operation)
	for k, v := range params {
		span.SetData(k, v)
	}
	return span
}

// KeyPrefix returns the entity and version part of a cache key, e.g.
// "report:v1" for "report:v1::monthly:sale:12:2025-11"
func KeyPrefix(key string) string {
	colons := 0
	for i := 0; i < len(key); i++ {
		if key[i] != ':' {
			continue
		}
		colons++
		if colons == 2 {
			return key[:i]
		}
	}
	return key
}

// FinishSpan safely finishes a span, handling nil spans
func FinishSpan(span *sentry.Span) {
	if span != nil {
		span.Finish()
	}
}

// SetSpanError marks a span as failed and adds error information
func SetSpanError(span *sentry.Span, err error) {
	if span == nil || err == nil {
		return
	}
	span.Status = sentry.SpanStatusInternalError
	span.SetData("error", err.Error())
}

// SetSpanSuccess marks a span as successful
func SetSpanSuccess(span *sentry.Span) {
	if span != nil {
		span.Status = sentry.SpanStatusOK
	}
}

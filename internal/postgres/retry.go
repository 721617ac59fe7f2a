package postgres

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/config"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/logger"
)

// RetryRead runs a read-only operation, retrying it with exponential backoff
// while it fails with ErrStoreUnavailable. Any other error is returned at once.
// Never use it for allocations or stock adjustments: their outcome on a
// timeout is unknown and a retry could apply them twice.
func RetryRead[T any](ctx context.Context, cfg config.StoreConfig, log *logger.Logger, op func(ctx context.Context) (T, error)) (T, error) {
	expo := backoff.NewExponentialBackOff()
	if cfg.InitialInterval > 0 {
		expo.InitialInterval = cfg.InitialInterval
	}
	if cfg.MaxInterval > 0 {
		expo.MaxInterval = cfg.MaxInterval
	}
	expo.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(expo, cfg.MaxRetries), ctx)

	attempt := 0
	return backoff.RetryNotifyWithData(func() (T, error) {
		attempt++
		res, err := op(ctx)
		if err != nil && !ierr.IsStoreUnavailable(err) {
			return res, backoff.Permanent(err)
		}
		return res, err
	}, policy, func(err error, wait time.Duration) {
		if log != nil {
			log.Warnw("store unavailable, retrying read",
				"attempt", attempt,
				"wait_ms", wait.Milliseconds(),
				"error", err,
			)
		}
	})
}

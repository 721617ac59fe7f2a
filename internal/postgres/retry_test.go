package postgres

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/config"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/logger"
)

func testStoreConfig() config.StoreConfig {
	return config.StoreConfig{
		MaxRetries:      3,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
	}
}

func TestRetryReadRecoversFromOutage(t *testing.T) {
	calls := 0
	got, err := RetryRead(context.Background(), testStoreConfig(), logger.NewNopLogger(), func(ctx context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, WrapError(driver.ErrBadConn, "read failed")
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 3, calls)
}

func TestRetryReadGivesUp(t *testing.T) {
	calls := 0
	_, err := RetryRead(context.Background(), testStoreConfig(), logger.NewNopLogger(), func(ctx context.Context) (int, error) {
		calls++
		return 0, WrapError(driver.ErrBadConn, "read failed")
	})

	require.Error(t, err)
	assert.True(t, ierr.IsStoreUnavailable(err))
	assert.Equal(t, 4, calls)
}

func TestRetryReadDoesNotRetryOtherErrors(t *testing.T) {
	calls := 0
	_, err := RetryRead(context.Background(), testStoreConfig(), logger.NewNopLogger(), func(ctx context.Context) (int, error) {
		calls++
		return 0, ierr.NewError("nope").Mark(ierr.ErrNotFound)
	})

	require.Error(t, err)
	assert.True(t, ierr.IsNotFound(err))
	assert.Equal(t, 1, calls)
}

func TestWrapErrorClassification(t *testing.T) {
	assert.True(t, ierr.IsStoreUnavailable(WrapError(driver.ErrBadConn, "x")))
	assert.True(t, ierr.IsStoreUnavailable(WrapError(&pq.Error{Code: "08006"}, "x")))
	assert.True(t, ierr.IsAlreadyExists(WrapError(&pq.Error{Code: "23505"}, "x")))
	assert.False(t, ierr.IsStoreUnavailable(WrapError(&pq.Error{Code: "57014"}, "x")))
	assert.Nil(t, WrapError(nil, "x"))
}

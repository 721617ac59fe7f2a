package testutil

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/logger"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil) // Ensure MockPostgresClient implements IClient

type txKey struct{}

// mockTx journals the undo steps the in-memory stores record while fn runs
type mockTx struct {
	mu   sync.Mutex
	undo []func()
}

func (tx *mockTx) rollback() {
	tx.mu.Lock()
	steps := tx.undo
	tx.undo = nil
	tx.mu.Unlock()

	for i := len(steps) - 1; i >= 0; i-- {
		steps[i]()
	}
}

// MockPostgresClient is a mock implementation of postgres client for testing.
// Writes made through the in-memory stores inside WithTx are undone when fn fails.
type MockPostgresClient struct {
	logger *logger.Logger

	// Commits and Rollbacks count outermost transactions by outcome
	Commits   atomic.Int32
	Rollbacks atomic.Int32
}

// NewMockPostgresClient creates a new mock postgres client
func NewMockPostgresClient(logger *logger.Logger) *MockPostgresClient {
	return &MockPostgresClient{
		logger: logger,
	}
}

// WithTx executes the given function within a transaction
func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	// If we're already in a transaction, reuse it
	if InTx(ctx) {
		return fn(ctx)
	}

	tx := &mockTx{}
	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		tx.rollback()
		c.Rollbacks.Add(1)
		c.logger.Debugw("rolled back transaction", "error", err)
		return err
	}
	c.Commits.Add(1)
	return nil
}

// InTx reports whether ctx was produced by MockPostgresClient.WithTx
func InTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(*mockTx)
	return ok
}

// OnRollback records undo to run if the transaction carried by ctx fails.
// Outside a transaction the write is final and undo is dropped.
func OnRollback(ctx context.Context, undo func()) {
	tx, ok := ctx.Value(txKey{}).(*mockTx)
	if !ok {
		return
	}
	tx.mu.Lock()
	defer tx.mu.Unlock()
	tx.undo = append(tx.undo, undo)
}

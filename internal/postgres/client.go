package postgres

import (
	"context"

	"go.uber.org/fx"
)

// IClient defines the interface for postgres client operations
type IClient interface {
	// WithTx wraps the given function in a transaction
	WithTx(ctx context.Context, fn func(context.Context) error) error
}

var _ IClient = (*DB)(nil)

// NewClient exposes the DB as an IClient for the service layer
func NewClient(db *DB) IClient {
	return db
}

// Module provides an fx.Option to integrate the database with the application
func Module() fx.Option {
	return fx.Options(
		fx.Provide(
			NewDB,
			NewClient,
		),
		fx.Invoke(registerHooks),
	)
}

func registerHooks(lc fx.Lifecycle, db *DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			db.logger.Info("closing database connections")
			db.Close()
			return nil
		},
	})
}

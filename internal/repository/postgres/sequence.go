package postgres

import (
	"context"

	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/sequence"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/logger"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/postgres"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/tracing"
)

type sequenceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewSequenceRepository(db *postgres.DB, logger *logger.Logger) sequence.Repository {
	return &sequenceRepository{db: db, logger: logger}
}

// Next is a single upsert, so concurrent callers are serialised by the row
// lock on the counter and each observes a distinct value.
func (r *sequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	span := tracing.StartRepositorySpan(ctx, "sequence", "next", map[string]interface{}{
		"name": name,
	})
	defer tracing.FinishSpan(span)

	query := `
		INSERT INTO counters (name, value)
		VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE
			SET value = counters.value + 1,
				updated_at = now()
		RETURNING value`

	var value int64
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &value, query, name); err != nil {
		tracing.SetSpanError(span, err)
		return 0, ierr.WithError(postgres.WrapError(err, "Failed to allocate sequence value")).
			WithHintf("Could not allocate the next %s number", name).
			WithReportableDetails(map[string]interface{}{
				"name": name,
			}).
			Mark(ierr.ErrAllocationFailed)
	}

	r.logger.Debugw("allocated sequence value", "name", name, "value", value)
	tracing.SetSpanSuccess(span)
	return value, nil
}

func (r *sequenceRepository) Current(ctx context.Context, name string) (int64, error) {
	span := tracing.StartRepositorySpan(ctx, "sequence", "current", map[string]interface{}{
		"name": name,
	})
	defer tracing.FinishSpan(span)

	var value int64
	err := r.db.GetQuerier(ctx).GetContext(ctx, &value,
		`SELECT COALESCE((SELECT value FROM counters WHERE name = $1), 0)`, name)
	if err != nil {
		tracing.SetSpanError(span, err)
		return 0, postgres.WrapError(err, "Failed to read sequence value")
	}

	tracing.SetSpanSuccess(span)
	return value, nil
}

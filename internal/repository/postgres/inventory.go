package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/inventory"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/logger"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/postgres"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/tracing"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

const stockColumns = `product_id, store_id, quantity_pkts, weight_kg, notes, created_at, updated_at`

type inventoryRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewInventoryRepository(db *postgres.DB, logger *logger.Logger) inventory.Repository {
	return &inventoryRepository{db: db, logger: logger}
}

func (r *inventoryRepository) ApplyDelta(ctx context.Context, adj inventory.Adjustment) (*inventory.StockEntry, error) {
	span := tracing.StartRepositorySpan(ctx, "inventory", "apply_delta", map[string]interface{}{
		"product_id": adj.ProductID,
		"store_id":   adj.StoreID,
	})
	defer tracing.FinishSpan(span)

	// The guard is part of the update itself: a row that would go negative
	// is simply not matched.
	query := `
		UPDATE stock_entries
		SET quantity_pkts = quantity_pkts + $3,
			weight_kg = weight_kg + $4,
			notes = COALESCE(NULLIF($5, ''), notes),
			updated_at = now()
		WHERE product_id = $1
			AND store_id = $2
			AND quantity_pkts + $3 >= 0
			AND weight_kg + $4 >= 0
		RETURNING ` + stockColumns

	var entry inventory.StockEntry
	err := r.db.GetQuerier(ctx).GetContext(ctx, &entry, query,
		adj.ProductID, adj.StoreID, adj.DeltaQuantity, adj.DeltaWeight, adj.Reason)
	if err != nil {
		tracing.SetSpanError(span, err)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHint("No stock entry accepted the adjustment").
				WithStockDetails(adj.ProductID, adj.StoreID, nil).
				Mark(ierr.ErrNotFound)
		}
		return nil, postgres.WrapError(err, "Failed to adjust stock")
	}

	r.logger.Debugw("applied stock delta",
		"product_id", adj.ProductID,
		"store_id", adj.StoreID,
		"delta_quantity", adj.DeltaQuantity,
		"delta_weight", adj.DeltaWeight.String(),
	)

	tracing.SetSpanSuccess(span)
	return &entry, nil
}

func (r *inventoryRepository) CreateIfAbsent(ctx context.Context, e *inventory.StockEntry) (*inventory.StockEntry, error) {
	span := tracing.StartRepositorySpan(ctx, "inventory", "create_if_absent", map[string]interface{}{
		"product_id": e.ProductID,
		"store_id":   e.StoreID,
	})
	defer tracing.FinishSpan(span)

	query := `
		INSERT INTO stock_entries (` + stockColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (product_id, store_id) DO NOTHING
		RETURNING ` + stockColumns

	var entry inventory.StockEntry
	err := r.db.GetQuerier(ctx).GetContext(ctx, &entry, query,
		e.ProductID, e.StoreID, e.QuantityPkts, e.WeightKg, e.Notes, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		tracing.SetSpanError(span, err)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHint("Stock entry already exists").
				Mark(ierr.ErrAlreadyExists)
		}
		if postgres.IsCheckViolation(err) {
			return nil, ierr.WithError(err).
				WithHint("Opening stock cannot be negative").
				Mark(ierr.ErrInvalidInitialAdjustment)
		}
		return nil, postgres.WrapError(err, "Failed to create stock entry")
	}

	r.logger.Debugw("created stock entry",
		"product_id", entry.ProductID,
		"store_id", entry.StoreID,
		"quantity_pkts", entry.QuantityPkts,
	)

	tracing.SetSpanSuccess(span)
	return &entry, nil
}

func (r *inventoryRepository) Get(ctx context.Context, productID, storeID string) (*inventory.StockEntry, error) {
	span := tracing.StartRepositorySpan(ctx, "inventory", "get", map[string]interface{}{
		"product_id": productID,
		"store_id":   storeID,
	})
	defer tracing.FinishSpan(span)

	var entry inventory.StockEntry
	err := r.db.GetQuerier(ctx).GetContext(ctx, &entry,
		`SELECT `+stockColumns+` FROM stock_entries WHERE product_id = $1 AND store_id = $2`,
		productID, storeID)
	if err != nil {
		tracing.SetSpanError(span, err)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHintf("No stock recorded for product %s in store %s", productID, storeID).
				Mark(ierr.ErrNotFound)
		}
		return nil, postgres.WrapError(err, "Failed to get stock entry")
	}

	tracing.SetSpanSuccess(span)
	return &entry, nil
}

func (r *inventoryRepository) List(ctx context.Context, filter *types.StockFilter) ([]*inventory.StockEntry, error) {
	span := tracing.StartRepositorySpan(ctx, "inventory", "list", nil)
	defer tracing.FinishSpan(span)

	if filter == nil {
		filter = &types.StockFilter{}
	}

	w := stockWhere(filter)
	query, args := paginate(
		`SELECT `+stockColumns+` FROM stock_entries`+w.String()+` ORDER BY product_id, store_id`,
		w.args, filter.QueryFilter)

	entries := make([]*inventory.StockEntry, 0)
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &entries, rebind(query), args...); err != nil {
		tracing.SetSpanError(span, err)
		return nil, postgres.WrapError(err, "Failed to list stock entries")
	}

	tracing.SetSpanSuccess(span)
	return entries, nil
}

func (r *inventoryRepository) Count(ctx context.Context, filter *types.StockFilter) (int, error) {
	if filter == nil {
		filter = &types.StockFilter{}
	}

	w := stockWhere(filter)
	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count,
		rebind(`SELECT COUNT(*) FROM stock_entries`+w.String()), w.args...); err != nil {
		return 0, postgres.WrapError(err, "Failed to count stock entries")
	}
	return count, nil
}

func stockWhere(filter *types.StockFilter) *where {
	w := &where{}
	if len(filter.ProductIDs) > 0 {
		w.add("product_id = ANY(?)", pq.Array(filter.ProductIDs))
	}
	if len(filter.StoreIDs) > 0 {
		w.add("store_id = ANY(?)", pq.Array(filter.StoreIDs))
	}
	if filter.NonZeroOnly {
		w.add("(quantity_pkts > 0 OR weight_kg > 0)")
	}
	return w
}

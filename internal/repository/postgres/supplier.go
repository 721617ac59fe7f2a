package postgres

import (
	"context"

	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/supplier"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/logger"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/postgres"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/tracing"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

type supplierRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewSupplierRepository(db *postgres.DB, logger *logger.Logger) supplier.Repository {
	return &supplierRepository{db: db, logger: logger}
}

func (r *supplierRepository) Create(ctx context.Context, s *supplier.Supplier) error {
	span := tracing.StartRepositorySpan(ctx, "supplier", "create", map[string]interface{}{
		"supplier_id": s.ID,
	})
	defer tracing.FinishSpan(span)

	query := `
		INSERT INTO suppliers (` + partyColumns + `)
		VALUES (
			:id, :code, :name, :phone, :address, :city, :opening_balance,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating supplier",
		"supplier_id", s.ID,
		"code", s.Code,
	)

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, s); err != nil {
		tracing.SetSpanError(span, err)
		return postgres.WrapError(err, "Failed to create supplier")
	}

	tracing.SetSpanSuccess(span)
	return nil
}

func (r *supplierRepository) Get(ctx context.Context, id string) (*supplier.Supplier, error) {
	span := tracing.StartRepositorySpan(ctx, "supplier", "get", map[string]interface{}{
		"supplier_id": id,
	})
	defer tracing.FinishSpan(span)

	var sup supplier.Supplier
	err := r.db.GetQuerier(ctx).GetContext(ctx, &sup,
		`SELECT `+partyColumns+` FROM suppliers WHERE id = $1 AND status != $2`,
		id, types.StatusDeleted)
	if err != nil {
		tracing.SetSpanError(span, err)
		return nil, ierr.WithError(postgres.WrapError(err, "Failed to get supplier")).
			WithHintf("Supplier with ID %s was not found", id).
			Error()
	}

	tracing.SetSpanSuccess(span)
	return &sup, nil
}

func (r *supplierRepository) List(ctx context.Context, filter *types.PartyFilter) ([]*supplier.Supplier, error) {
	span := tracing.StartRepositorySpan(ctx, "supplier", "list", nil)
	defer tracing.FinishSpan(span)

	if filter == nil {
		filter = &types.PartyFilter{}
	}

	w := partyWhere(filter)
	query, args := paginate(
		`SELECT `+partyColumns+` FROM suppliers`+w.String()+` ORDER BY created_at DESC, id DESC`,
		w.args, filter.QueryFilter)

	suppliers := make([]*supplier.Supplier, 0)
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &suppliers, rebind(query), args...); err != nil {
		tracing.SetSpanError(span, err)
		return nil, postgres.WrapError(err, "Failed to list suppliers")
	}

	tracing.SetSpanSuccess(span)
	return suppliers, nil
}

func (r *supplierRepository) Count(ctx context.Context, filter *types.PartyFilter) (int, error) {
	if filter == nil {
		filter = &types.PartyFilter{}
	}

	w := partyWhere(filter)
	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count,
		rebind(`SELECT COUNT(*) FROM suppliers`+w.String()), w.args...); err != nil {
		return 0, postgres.WrapError(err, "Failed to count suppliers")
	}
	return count, nil
}

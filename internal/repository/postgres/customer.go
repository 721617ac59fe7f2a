package postgres

import (
	"context"

	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/customer"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/logger"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/postgres"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/tracing"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

const partyColumns = `id, code, name, phone, address, city, opening_balance, status, created_at, updated_at, created_by, updated_by`

type customerRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewCustomerRepository(db *postgres.DB, logger *logger.Logger) customer.Repository {
	return &customerRepository{db: db, logger: logger}
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	span := tracing.StartRepositorySpan(ctx, "customer", "create", map[string]interface{}{
		"customer_id": c.ID,
	})
	defer tracing.FinishSpan(span)

	query := `
		INSERT INTO customers (` + partyColumns + `)
		VALUES (
			:id, :code, :name, :phone, :address, :city, :opening_balance,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating customer",
		"customer_id", c.ID,
		"code", c.Code,
	)

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, c); err != nil {
		tracing.SetSpanError(span, err)
		return postgres.WrapError(err, "Failed to create customer")
	}

	tracing.SetSpanSuccess(span)
	return nil
}

func (r *customerRepository) Get(ctx context.Context, id string) (*customer.Customer, error) {
	span := tracing.StartRepositorySpan(ctx, "customer", "get", map[string]interface{}{
		"customer_id": id,
	})
	defer tracing.FinishSpan(span)

	var c customer.Customer
	err := r.db.GetQuerier(ctx).GetContext(ctx, &c,
		`SELECT `+partyColumns+` FROM customers WHERE id = $1 AND status != $2`,
		id, types.StatusDeleted)
	if err != nil {
		tracing.SetSpanError(span, err)
		return nil, ierr.WithError(postgres.WrapError(err, "Failed to get customer")).
			WithHintf("Customer with ID %s was not found", id).
			Error()
	}

	tracing.SetSpanSuccess(span)
	return &c, nil
}

func (r *customerRepository) List(ctx context.Context, filter *types.PartyFilter) ([]*customer.Customer, error) {
	span := tracing.StartRepositorySpan(ctx, "customer", "list", nil)
	defer tracing.FinishSpan(span)

	if filter == nil {
		filter = &types.PartyFilter{}
	}

	w := partyWhere(filter)
	query, args := paginate(
		`SELECT `+partyColumns+` FROM customers`+w.String()+` ORDER BY created_at DESC, id DESC`,
		w.args, filter.QueryFilter)

	customers := make([]*customer.Customer, 0)
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &customers, rebind(query), args...); err != nil {
		tracing.SetSpanError(span, err)
		return nil, postgres.WrapError(err, "Failed to list customers")
	}

	tracing.SetSpanSuccess(span)
	return customers, nil
}

func (r *customerRepository) Count(ctx context.Context, filter *types.PartyFilter) (int, error) {
	if filter == nil {
		filter = &types.PartyFilter{}
	}

	w := partyWhere(filter)
	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count,
		rebind(`SELECT COUNT(*) FROM customers`+w.String()), w.args...); err != nil {
		return 0, postgres.WrapError(err, "Failed to count customers")
	}
	return count, nil
}

// partyWhere is shared by the customer and supplier tables, which have the same shape
func partyWhere(filter *types.PartyFilter) *where {
	w := &where{}
	w.add("status != ?", types.StatusDeleted)
	if filter.Search != "" {
		p := searchPattern(filter.Search)
		w.add("(name ILIKE ? OR code ILIKE ?)", p, p)
	}
	return w
}

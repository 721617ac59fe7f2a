package postgres

import (
	"context"

	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/payment"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/logger"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/postgres"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/tracing"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

const paymentColumns = `id, kind, receipt_number, cheque_number, party_type, party_id, party_name,
	method, bank_name, amount, payment_date, notes, status, created_at, updated_at, created_by, updated_by`

type paymentRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPaymentRepository(db *postgres.DB, logger *logger.Logger) payment.Repository {
	return &paymentRepository{db: db, logger: logger}
}

func (r *paymentRepository) Create(ctx context.Context, p *payment.Payment) error {
	span := tracing.StartRepositorySpan(ctx, "payment", "create", map[string]interface{}{
		"payment_id": p.ID,
		"kind":       p.Kind,
	})
	defer tracing.FinishSpan(span)

	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES (
			:id, :kind, :receipt_number, :cheque_number, :party_type, :party_id, :party_name,
			:method, :bank_name, :amount, :payment_date, :notes,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating payment",
		"payment_id", p.ID,
		"receipt_number", p.ReceiptNumber,
		"method", p.Method,
	)

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, p); err != nil {
		tracing.SetSpanError(span, err)
		return postgres.WrapError(err, "Failed to create payment")
	}

	tracing.SetSpanSuccess(span)
	return nil
}

func (r *paymentRepository) Get(ctx context.Context, id string) (*payment.Payment, error) {
	span := tracing.StartRepositorySpan(ctx, "payment", "get", map[string]interface{}{
		"payment_id": id,
	})
	defer tracing.FinishSpan(span)

	var p payment.Payment
	err := r.db.GetQuerier(ctx).GetContext(ctx, &p,
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1 AND status != $2`,
		id, types.StatusDeleted)
	if err != nil {
		tracing.SetSpanError(span, err)
		return nil, ierr.WithError(postgres.WrapError(err, "Failed to get payment")).
			WithHintf("Payment with ID %s was not found", id).
			Error()
	}

	tracing.SetSpanSuccess(span)
	return &p, nil
}

func (r *paymentRepository) List(ctx context.Context, filter *types.PaymentFilter) ([]*payment.Payment, error) {
	span := tracing.StartRepositorySpan(ctx, "payment", "list", nil)
	defer tracing.FinishSpan(span)

	if filter == nil {
		filter = &types.PaymentFilter{}
	}

	w := paymentWhere(filter)
	query, args := paginate(
		`SELECT `+paymentColumns+` FROM payments`+w.String()+` ORDER BY payment_date DESC, receipt_number DESC`,
		w.args, filter.QueryFilter)

	payments := make([]*payment.Payment, 0)
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &payments, rebind(query), args...); err != nil {
		tracing.SetSpanError(span, err)
		return nil, postgres.WrapError(err, "Failed to list payments")
	}

	tracing.SetSpanSuccess(span)
	return payments, nil
}

func (r *paymentRepository) Count(ctx context.Context, filter *types.PaymentFilter) (int, error) {
	if filter == nil {
		filter = &types.PaymentFilter{}
	}

	w := paymentWhere(filter)
	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count,
		rebind(`SELECT COUNT(*) FROM payments`+w.String()), w.args...); err != nil {
		return 0, postgres.WrapError(err, "Failed to count payments")
	}
	return count, nil
}

func paymentWhere(filter *types.PaymentFilter) *where {
	w := &where{}
	w.add("status != ?", types.StatusDeleted)
	if filter.Kind != "" {
		w.add("kind = ?", filter.Kind)
	}
	if filter.PartyID != "" {
		w.add("party_id = ?", filter.PartyID)
	}
	if filter.StartDate != nil {
		w.add("payment_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		w.add("payment_date < ?", *filter.EndDate)
	}
	return w
}

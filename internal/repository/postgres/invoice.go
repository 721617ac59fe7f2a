package postgres

import (
	"context"

	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/invoice"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/logger"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/postgres"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/tracing"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

const invoiceColumns = `id, kind, invoice_number, invoice_date, party_id, party_name, items,
	total_amount, discount, net_amount, notes, status, created_at, updated_at, created_by, updated_by`

type invoiceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	span := tracing.StartRepositorySpan(ctx, "invoice", "create", map[string]interface{}{
		"invoice_id": inv.ID,
		"kind":       inv.Kind,
	})
	defer tracing.FinishSpan(span)

	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES (
			:id, :kind, :invoice_number, :invoice_date, :party_id, :party_name, :items,
			:total_amount, :discount, :net_amount, :notes,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating invoice",
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"kind", inv.Kind,
		"line_count", len(inv.Items),
	)

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, inv); err != nil {
		tracing.SetSpanError(span, err)
		return postgres.WrapError(err, "Failed to create invoice")
	}

	tracing.SetSpanSuccess(span)
	return nil
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	span := tracing.StartRepositorySpan(ctx, "invoice", "get", map[string]interface{}{
		"invoice_id": id,
	})
	defer tracing.FinishSpan(span)

	var inv invoice.Invoice
	err := r.db.GetQuerier(ctx).GetContext(ctx, &inv,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 AND status != $2`,
		id, types.StatusDeleted)
	if err != nil {
		tracing.SetSpanError(span, err)
		return nil, ierr.WithError(postgres.WrapError(err, "Failed to get invoice")).
			WithHintf("Invoice with ID %s was not found", id).
			Error()
	}

	tracing.SetSpanSuccess(span)
	return &inv, nil
}

func (r *invoiceRepository) List(ctx context.Context, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	span := tracing.StartRepositorySpan(ctx, "invoice", "list", map[string]interface{}{
		"kind": filterKind(filter),
	})
	defer tracing.FinishSpan(span)

	if filter == nil {
		filter = &types.InvoiceFilter{}
	}

	w := invoiceWhere(filter)
	query, args := paginate(
		`SELECT `+invoiceColumns+` FROM invoices`+w.String()+` ORDER BY invoice_date DESC, invoice_number DESC`,
		w.args, filter.QueryFilter)

	invoices := make([]*invoice.Invoice, 0)
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &invoices, rebind(query), args...); err != nil {
		tracing.SetSpanError(span, err)
		return nil, postgres.WrapError(err, "Failed to list invoices")
	}

	tracing.SetSpanSuccess(span)
	return invoices, nil
}

func (r *invoiceRepository) Count(ctx context.Context, filter *types.InvoiceFilter) (int, error) {
	if filter == nil {
		filter = &types.InvoiceFilter{}
	}

	w := invoiceWhere(filter)
	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count,
		rebind(`SELECT COUNT(*) FROM invoices`+w.String()), w.args...); err != nil {
		return 0, postgres.WrapError(err, "Failed to count invoices")
	}
	return count, nil
}

func invoiceWhere(filter *types.InvoiceFilter) *where {
	w := &where{}
	w.add("status != ?", types.StatusDeleted)
	if filter.Kind != "" {
		w.add("kind = ?", filter.Kind)
	}
	if filter.PartyID != "" {
		w.add("party_id = ?", filter.PartyID)
	}
	if filter.StartDate != nil {
		w.add("invoice_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		w.add("invoice_date < ?", *filter.EndDate)
	}
	return w
}

func filterKind(filter *types.InvoiceFilter) string {
	if filter == nil {
		return ""
	}
	return string(filter.Kind)
}

package postgres

import (
	"context"

	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/domain/product"
	ierr "github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/errors"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/logger"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/postgres"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/tracing"
	"github.com/talhahassan0005/Management-system-Amir-traders--sub002/internal/types"
)

const productColumns = `id, code, name, category, unit, sale_rate, purchase_rate, status, created_at, updated_at, created_by, updated_by`

type productRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewProductRepository(db *postgres.DB, logger *logger.Logger) product.Repository {
	return &productRepository{db: db, logger: logger}
}

func (r *productRepository) Create(ctx context.Context, p *product.Product) error {
	span := tracing.StartRepositorySpan(ctx, "product", "create", map[string]interface{}{
		"product_id": p.ID,
	})
	defer tracing.FinishSpan(span)

	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES (
			:id, :code, :name, :category, :unit, :sale_rate, :purchase_rate,
			:status, :created_at, :updated_at, :created_by, :updated_by
		)`

	r.logger.Debugw("creating product",
		"product_id", p.ID,
		"code", p.Code,
	)

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, p); err != nil {
		tracing.SetSpanError(span, err)
		return postgres.WrapError(err, "Failed to create product")
	}

	tracing.SetSpanSuccess(span)
	return nil
}

func (r *productRepository) Get(ctx context.Context, id string) (*product.Product, error) {
	span := tracing.StartRepositorySpan(ctx, "product", "get", map[string]interface{}{
		"product_id": id,
	})
	defer tracing.FinishSpan(span)

	var p product.Product
	err := r.db.GetQuerier(ctx).GetContext(ctx, &p,
		`SELECT `+productColumns+` FROM products WHERE id = $1 AND status != $2`,
		id, types.StatusDeleted)
	if err != nil {
		tracing.SetSpanError(span, err)
		return nil, ierr.WithError(postgres.WrapError(err, "Failed to get product")).
			WithHintf("Product with ID %s was not found", id).
			Error()
	}

	tracing.SetSpanSuccess(span)
	return &p, nil
}

func (r *productRepository) List(ctx context.Context, filter *types.ProductFilter) ([]*product.Product, error) {
	span := tracing.StartRepositorySpan(ctx, "product", "list", nil)
	defer tracing.FinishSpan(span)

	if filter == nil {
		filter = &types.ProductFilter{}
	}

	w := productWhere(filter)
	query, args := paginate(
		`SELECT `+productColumns+` FROM products`+w.String()+` ORDER BY name ASC, id ASC`,
		w.args, filter.QueryFilter)

	products := make([]*product.Product, 0)
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &products, rebind(query), args...); err != nil {
		tracing.SetSpanError(span, err)
		return nil, postgres.WrapError(err, "Failed to list products")
	}

	tracing.SetSpanSuccess(span)
	return products, nil
}

func (r *productRepository) Count(ctx context.Context, filter *types.ProductFilter) (int, error) {
	if filter == nil {
		filter = &types.ProductFilter{}
	}

	w := productWhere(filter)
	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count,
		rebind(`SELECT COUNT(*) FROM products`+w.String()), w.args...); err != nil {
		return 0, postgres.WrapError(err, "Failed to count products")
	}
	return count, nil
}

func productWhere(filter *types.ProductFilter) *where {
	w := &where{}
	w.add("status != ?", types.StatusDeleted)
	if filter.Search != "" {
		p := searchPattern(filter.Search)
		w.add("(name ILIKE ? OR code ILIKE ?)", p, p)
	}
	if filter.Category != "" {
		w.add("LOWER(category) = LOWER(?)", filter.Category)
	}
	return w
}

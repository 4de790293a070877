package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ecommerce-refarch/product-catalog-service/internal/catalog/domain"
)

// Repository implements the ProductStore port on Postgres. Every method is
// a single statement, so atomicity is per record; the counter increment is
// one conditional upsert so concurrent callers never mint the same id.
type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

// InitSchema creates the products and counters tables if they are absent.
// The name column is indexed (not unique) for the normalized-name lookup;
// uniqueness stays a service-level check.
func (r *Repository) InitSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS products (
            id BIGINT PRIMARY KEY,
            name TEXT NOT NULL,
            description TEXT NOT NULL,
            price NUMERIC NOT NULL,
            quantity BIGINT NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS products_name_idx ON products (name)`,
		`CREATE TABLE IF NOT EXISTS counters (
            key TEXT PRIMARY KEY,
            value BIGINT NOT NULL
        )`,
	}
	for _, stmt := range stmts {
		if _, err := r.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("%w: init schema: %w", domain.ErrStoreUnavailable, err)
		}
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id uint64) (domain.Product, bool, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, name, description, price, quantity FROM products WHERE id=$1`, int64(id))
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, false, nil
	}
	if err != nil {
		return domain.Product{}, false, fmt.Errorf("%w: get product %d: %w", domain.ErrStoreUnavailable, id, err)
	}
	return p, true, nil
}

func (r *Repository) FindByName(ctx context.Context, name string) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description, price, quantity FROM products WHERE name=$1`, name)
	if err != nil {
		return nil, fmt.Errorf("%w: find by name: %w", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *Repository) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	_, err := r.pool.Exec(ctx, `INSERT INTO products (id, name, description, price, quantity) VALUES ($1,$2,$3,$4,$5)`,
		int64(p.ID), p.Name, p.Description, p.Price, p.Quantity)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: create product: %w", domain.ErrStoreUnavailable, err)
	}
	return p, nil
}

func (r *Repository) Update(ctx context.Context, p domain.Product) (domain.Product, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE products SET name=$2, description=$3, price=$4, quantity=$5 WHERE id=$1`,
		int64(p.ID), p.Name, p.Description, p.Price, p.Quantity)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: update product %d: %w", domain.ErrStoreUnavailable, p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Product{}, fmt.Errorf("%w: update product %d: no such row", domain.ErrStoreUnavailable, p.ID)
	}
	return p, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description, price, quantity FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%w: list products: %w", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()
	return collectProducts(rows)
}

// NextSequence is the equivalent of a create-if-absent atomic increment:
// the insert seeds the counter at 1, the conflict branch bumps it, and the
// whole statement returns the post-increment value.
func (r *Repository) NextSequence(ctx context.Context, key string) (uint64, error) {
	var value int64
	err := r.pool.QueryRow(ctx, `
        INSERT INTO counters (key, value) VALUES ($1, 1)
        ON CONFLICT (key) DO UPDATE SET value = counters.value + 1
        RETURNING value`, key).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("%w: next sequence %q: %w", domain.ErrStoreUnavailable, key, err)
	}
	return uint64(value), nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		p     domain.Product
		id    int64
		price decimal.Decimal
	)
	if err := row.Scan(&id, &p.Name, &p.Description, &price, &p.Quantity); err != nil {
		return domain.Product{}, err
	}
	p.ID = uint64(id)
	p.Price = price
	return p, nil
}

func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan product: %w", domain.ErrStoreUnavailable, err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate products: %w", domain.ErrStoreUnavailable, err)
	}
	return products, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/xenking/supermarket-receipt/internal/domain/product"
)

const (
	listProductsSQL = `SELECT name, unit, price FROM products ORDER BY name`

	upsertProductSQL = `INSERT INTO products (name, unit, price)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE
		SET unit = EXCLUDED.unit, price = EXCLUDED.price, updated_at = now()`
)

// ProductRepository reads and writes catalog listings.
type ProductRepository struct {
	db DBTX
}

// NewProductRepository returns a ProductRepository that uses db.
func NewProductRepository(db DBTX) *ProductRepository {
	return &ProductRepository{db: db}
}

// List returns every listing ordered by product name.
func (r *ProductRepository) List(ctx context.Context) ([]product.Listing, error) {
	rows, err := r.db.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	listings, err := pgx.CollectRows(rows, scanListing)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return listings, nil
}

// Catalog loads every listing into an in-memory catalog.
func (r *ProductRepository) Catalog(ctx context.Context) (*product.MemoryCatalog, error) {
	listings, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return product.NewMemoryCatalog(listings...), nil
}

// Upsert inserts l or replaces the stored unit and price.
func (r *ProductRepository) Upsert(ctx context.Context, l product.Listing) error {
	_, err := r.db.Exec(ctx, upsertProductSQL, l.Product.Name, l.Product.Unit.String(), l.Price)
	if err != nil {
		return fmt.Errorf("upserting product %q: %w", l.Product.Name, err)
	}
	return nil
}

func scanListing(row pgx.CollectableRow) (product.Listing, error) {
	var (
		l     product.Listing
		unit  string
		price decimal.Decimal
	)
	if err := row.Scan(&l.Product.Name, &unit, &price); err != nil {
		return l, err
	}
	u, err := product.ParseUnit(unit)
	if err != nil {
		return l, err
	}
	l.Product.Unit = u
	l.Price = price
	return l, nil
}

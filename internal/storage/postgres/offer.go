package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/xenking/supermarket-receipt/internal/domain/offer"
)

const (
	listOffersSQL = `SELECT product_name, kind, bundle_size, value
		FROM special_offers ORDER BY product_name`

	upsertOfferSQL = `INSERT INTO special_offers (product_name, kind, bundle_size, value)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_name) DO UPDATE
		SET kind = EXCLUDED.kind, bundle_size = EXCLUDED.bundle_size,
			value = EXCLUDED.value, updated_at = now()`
)

// OfferRepository reads and writes special offers.
type OfferRepository struct {
	db DBTX
}

// NewOfferRepository returns an OfferRepository that uses db.
func NewOfferRepository(db DBTX) *OfferRepository {
	return &OfferRepository{db: db}
}

// List returns every stored offer ordered by product name.
func (r *OfferRepository) List(ctx context.Context) ([]offer.Record, error) {
	rows, err := r.db.Query(ctx, listOffersSQL)
	if err != nil {
		return nil, fmt.Errorf("listing offers: %w", err)
	}
	records, err := pgx.CollectRows(rows, scanOffer)
	if err != nil {
		return nil, fmt.Errorf("listing offers: %w", err)
	}
	return records, nil
}

// Registry loads every stored offer into a registry.
func (r *OfferRepository) Registry(ctx context.Context) (*offer.Registry, error) {
	records, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return offer.RegistryFromRecords(records)
}

// Upsert installs rec as the offer for its product, replacing any previous
// one.
func (r *OfferRepository) Upsert(ctx context.Context, rec offer.Record) error {
	if _, err := rec.Offer(); err != nil {
		return fmt.Errorf("upserting offer for %q: %w", rec.Product, err)
	}
	_, err := r.db.Exec(ctx, upsertOfferSQL, rec.Product, string(rec.Kind), int32(rec.Size), rec.Value)
	if err != nil {
		return fmt.Errorf("upserting offer for %q: %w", rec.Product, err)
	}
	return nil
}

func scanOffer(row pgx.CollectableRow) (offer.Record, error) {
	var (
		rec   offer.Record
		kind  string
		size  int32
		value decimal.Decimal
	)
	err := row.Scan(&rec.Product, &kind, &size, &value)
	rec.Kind = offer.Kind(kind)
	rec.Size = int64(size)
	rec.Value = value
	return rec, err
}

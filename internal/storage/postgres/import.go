package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/supermarket-receipt/internal/domain/offer"
	"github.com/xenking/supermarket-receipt/internal/domain/product"
)

// Import upserts listings and offers in a single transaction. Nothing is
// written when any row fails.
func Import(ctx context.Context, pool *pgxpool.Pool, listings []product.Listing, offers []offer.Record) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		products := NewProductRepository(tx)
		for _, l := range listings {
			if err := products.Upsert(ctx, l); err != nil {
				return err
			}
		}

		specials := NewOfferRepository(tx)
		for _, rec := range offers {
			if err := specials.Upsert(ctx, rec); err != nil {
				return errors.Wrap(err, "import offers")
			}
		}
		return nil
	})
}

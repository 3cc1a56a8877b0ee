//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/xenking/supermarket-receipt/internal/domain/cart"
	"github.com/xenking/supermarket-receipt/internal/domain/offer"
	"github.com/xenking/supermarket-receipt/internal/domain/product"
	"github.com/xenking/supermarket-receipt/internal/domain/receipt"
)

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:17-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "receipt",
				"POSTGRES_PASSWORD": "receipt",
				"POSTGRES_DB":       "receipt",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := c.Terminate(context.Background()); err != nil {
			t.Logf("terminate postgres: %v", err)
		}
	})

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	url := fmt.Sprintf("postgres://receipt:receipt@%s:%s/receipt?sslmode=disable", host, port.Port())
	pool, err := NewPool(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, RunMigrations(ctx, pool))
	return pool
}

func TestStore_ImportAndLoad(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()

	apples := product.Product{Name: "apples", Unit: product.UnitWeighted}
	toothbrush := product.Product{Name: "toothbrush", Unit: product.UnitEach}

	err := Import(ctx, pool,
		[]product.Listing{
			{Product: apples, Price: decimal.RequireFromString("1.99")},
			{Product: toothbrush, Price: decimal.RequireFromString("0.99")},
		},
		[]offer.Record{
			offer.RecordOf("apples", offer.TenPercentDiscount()),
			offer.RecordOf("toothbrush", offer.ThreeForTwo()),
		},
	)
	require.NoError(t, err)

	catalog, err := NewProductRepository(pool).Catalog(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.Len())

	registry, err := NewOfferRepository(pool).Registry(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, registry.Len())

	c := cart.New()
	require.NoError(t, c.AddItemQuantity(apples, decimal.RequireFromString("2.5")))
	r, err := receipt.NewTeller(catalog, registry).ChecksOutArticlesFrom(c)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("4.4775").Equal(r.TotalPrice()),
		"got %s", r.TotalPrice())
}

func TestStore_UpsertReplacesOffer(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()

	rice := product.Product{Name: "rice", Unit: product.UnitEach}
	require.NoError(t, Import(ctx, pool,
		[]product.Listing{{Product: rice, Price: decimal.RequireFromString("2.49")}},
		[]offer.Record{offer.RecordOf("rice", offer.TenPercentDiscount())},
	))

	offers := NewOfferRepository(pool)
	require.NoError(t, offers.Upsert(ctx, offer.RecordOf("rice", offer.FiveForAmount(decimal.RequireFromString("7.49")))))

	records, err := offers.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, offer.KindBundlePrice, records[0].Kind)
	assert.Equal(t, int64(5), records[0].Size)
}

func TestStore_ImportRollsBackOnInvalidOffer(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()

	err := Import(ctx, pool,
		[]product.Listing{{Product: product.Product{Name: "rice"}, Price: decimal.RequireFromString("2.49")}},
		[]offer.Record{{Product: "rice", Kind: "bogus"}},
	)
	require.ErrorIs(t, err, offer.ErrInvalidOffer)

	listings, err := NewProductRepository(pool).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listings)
}

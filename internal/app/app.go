package app

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/supermarket-receipt/internal/codec"
	"github.com/xenking/supermarket-receipt/internal/domain/offer"
	"github.com/xenking/supermarket-receipt/internal/domain/product"
	"github.com/xenking/supermarket-receipt/internal/handler"
	"github.com/xenking/supermarket-receipt/internal/storage/postgres"
	"github.com/xenking/supermarket-receipt/pkg/health"
	"github.com/xenking/supermarket-receipt/pkg/httpmiddleware"
)

// snapshot is the catalog and offer state shared read-only by requests.
type snapshot struct {
	catalog *product.MemoryCatalog
	offers  *offer.Registry
}

// Run loads the catalog, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	healthSvc := health.New()
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))

	var snap *snapshot
	if cfg.DatabaseURL != "" {
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return errors.Wrap(err, "create db pool")
		}
		defer pool.Close()

		if err := postgres.RunMigrations(ctx, pool); err != nil {
			return errors.Wrap(err, "run migrations")
		}
		if cfg.CatalogFile != "" {
			if err := seedFromFile(ctx, lg, pool, cfg.CatalogFile); err != nil {
				return err
			}
		}
		if snap, err = loadFromDB(ctx, pool); err != nil {
			return err
		}
		healthSvc.AddReadinessCheck("postgres", 5*time.Second, func(ctx context.Context) error {
			return pool.Ping(ctx)
		})
	} else {
		var err error
		if snap, err = loadFromFile(cfg.CatalogFile); err != nil {
			return err
		}
	}
	lg.Info("Catalog loaded",
		zap.Int("products", snap.catalog.Len()),
		zap.Int("offers", snap.offers.Len()),
	)
	healthSvc.AddReadinessCheck("catalog", time.Second, health.NonEmptyCheck("catalog", snap.catalog.Len))
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	h, err := handler.NewHandler(
		handler.Config{Columns: cfg.Columns},
		snap.catalog,
		snap.offers,
		m.TracerProvider(),
		m.MeterProvider(),
	)
	if err != nil {
		return errors.Wrap(err, "create handler")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("GET /readyz", healthSvc.ReadyEndpoint)
	h.Register(mux)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: otelhttp.NewHandler(
			httpmiddleware.Wrap(mux,
				httpmiddleware.RequestID(),
				httpmiddleware.InjectLogger(zctx.From(ctx)),
				httpmiddleware.Recovery(),
				httpmiddleware.RateLimitWithCleanup(ctx, httpmiddleware.RateLimitConfig{
					Max:    cfg.RateLimit.Max,
					Window: cfg.RateLimit.Window,
				}),
				httpmiddleware.LogRequests(),
			),
			"receipt-api",
			otelhttp.WithTracerProvider(m.TracerProvider()),
			otelhttp.WithMeterProvider(m.MeterProvider()),
			otelhttp.WithFilter(func(r *http.Request) bool {
				return r.URL.Path != "/livez" && r.URL.Path != "/readyz"
			}),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}

// loadFromDB reads products and offers concurrently.
func loadFromDB(ctx context.Context, pool *pgxpool.Pool) (*snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := postgres.NewProductRepository(pool).Catalog(gctx)
		if err != nil {
			return errors.Wrap(err, "load catalog")
		}
		snap.catalog = c
		return nil
	})
	g.Go(func() error {
		r, err := postgres.NewOfferRepository(pool).Registry(gctx)
		if err != nil {
			return errors.Wrap(err, "load offers")
		}
		snap.offers = r
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

func readDocument(path string) (*codec.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read catalog file")
	}
	doc, err := codec.DecodeDocument(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	return doc, nil
}

func loadFromFile(path string) (*snapshot, error) {
	doc, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	offers, err := doc.Registry()
	if err != nil {
		return nil, errors.Wrap(err, "build offers")
	}
	return &snapshot{catalog: doc.Catalog(), offers: offers}, nil
}

func seedFromFile(ctx context.Context, lg *zap.Logger, pool *pgxpool.Pool, path string) error {
	doc, err := readDocument(path)
	if err != nil {
		return err
	}
	if err := postgres.Import(ctx, pool, doc.Products, doc.Offers); err != nil {
		return errors.Wrap(err, "seed catalog")
	}
	lg.Info("Catalog seeded",
		zap.String("file", path),
		zap.Int("products", len(doc.Products)),
		zap.Int("offers", len(doc.Offers)),
	)
	return nil
}

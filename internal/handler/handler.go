// Package handler serves the receipt HTTP API.
package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xenking/supermarket-receipt/internal/codec"
	"github.com/xenking/supermarket-receipt/internal/domain/product"
	"github.com/xenking/supermarket-receipt/internal/domain/receipt"
)

// Catalog is the read-only catalog snapshot the handler checks out against.
type Catalog interface {
	product.Catalog
	codec.Resolver
	List() []product.Listing
}

// Config holds non-dependency settings for the Handler.
type Config struct {
	// Columns is the width of text receipts. Zero uses the printer default.
	Columns int
	// MaxBodyBytes caps checkout request bodies. Zero means 1 MiB.
	MaxBodyBytes int64
}

// Handler serves checkout and catalog endpoints over a shared catalog and
// offer registry snapshot.
type Handler struct {
	catalog Catalog
	offers  receipt.Offers
	teller  *receipt.Teller
	printer *receipt.Printer
	maxBody int64

	tracer    trace.Tracer
	checkouts metric.Int64Counter
	discounts metric.Int64Counter
}

// NewHandler constructs a Handler.
func NewHandler(
	cfg Config,
	catalog Catalog,
	offers receipt.Offers,
	tp trace.TracerProvider,
	mp metric.MeterProvider,
) (*Handler, error) {
	meter := mp.Meter("receipt")
	checkouts, err := meter.Int64Counter("receipt.checkouts",
		metric.WithDescription("Completed checkouts"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "checkouts counter")
	}
	discounts, err := meter.Int64Counter("receipt.discounts",
		metric.WithDescription("Discounts applied at checkout"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "discounts counter")
	}

	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	return &Handler{
		catalog:   catalog,
		offers:    offers,
		teller:    receipt.NewTeller(catalog, offers),
		printer:   receipt.NewPrinter(cfg.Columns),
		maxBody:   maxBody,
		tracer:    tp.Tracer("receipt/handler"),
		checkouts: checkouts,
		discounts: discounts,
	}, nil
}

// Register mounts the API routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/checkout", h.Checkout)
	mux.HandleFunc("GET /api/product", h.ListProducts)
}

func writeJSON(w http.ResponseWriter, status int, e *jx.Encoder) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		zctx.From(r.Context()).Error("Request failed", zap.Error(err))
	}
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	var e jx.Encoder
	codec.EncodeError(&e, status, msg)
	writeJSON(w, status, &e)
}

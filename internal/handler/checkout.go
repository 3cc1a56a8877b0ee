package handler

import (
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/xenking/supermarket-receipt/internal/codec"
	"github.com/xenking/supermarket-receipt/internal/domain/cart"
	"github.com/xenking/supermarket-receipt/internal/domain/product"
)

// Checkout builds a receipt for the posted cart. The response is JSON unless
// the format query parameter is "text".
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Checkout")
	defer span.End()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, r, http.StatusRequestEntityTooLarge, err)
			return
		}
		writeError(w, r, http.StatusBadRequest, errors.Wrap(err, "read body"))
		return
	}

	c, err := codec.DecodeCart(body, h.catalog)
	if err != nil {
		span.RecordError(err)
		writeError(w, r, checkoutStatus(err), err)
		return
	}

	rcpt, err := h.teller.ChecksOutArticlesFrom(c)
	if err != nil {
		span.RecordError(err)
		writeError(w, r, checkoutStatus(err), err)
		return
	}

	id := uuid.NewString()
	discounts := rcpt.Discounts()
	span.SetAttributes(
		attribute.String("receipt.id", id),
		attribute.Int("receipt.items", len(rcpt.Items())),
		attribute.Int("receipt.discounts", len(discounts)),
	)
	span.SetStatus(codes.Ok, "")

	format := r.URL.Query().Get("format")
	h.checkouts.Add(ctx, 1, metric.WithAttributes(attribute.String("format", formatName(format))))
	for _, d := range discounts {
		h.discounts.Add(ctx, 1, metric.WithAttributes(attribute.String("product", d.Product.Name)))
	}
	zctx.From(ctx).Debug("Checked out",
		zap.String("receipt_id", id),
		zap.Int("items", len(rcpt.Items())),
		zap.Stringer("total", rcpt.TotalPrice()),
	)

	if format == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("X-Receipt-ID", id)
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, h.printer.Print(rcpt))
		return
	}

	var e jx.Encoder
	codec.EncodeReceipt(&e, id, rcpt)
	writeJSON(w, http.StatusOK, &e)
}

// checkoutStatus maps checkout failures to HTTP status codes.
func checkoutStatus(err error) int {
	switch {
	case errors.Is(err, codec.ErrMalformed):
		return http.StatusBadRequest
	case errors.Is(err, cart.ErrInvalidQuantity), errors.Is(err, product.ErrNotFound):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func formatName(format string) string {
	if format == "text" {
		return "text"
	}
	return "json"
}

package handler

import (
	"net/http"

	"github.com/go-faster/jx"

	"github.com/xenking/supermarket-receipt/internal/codec"
)

// ListProducts returns the catalog with prices and the offer of each
// product, if any.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	_, span := h.tracer.Start(r.Context(), "ListProducts")
	defer span.End()

	var e jx.Encoder
	codec.EncodeListings(&e, h.catalog.List(), h.offers)
	writeJSON(w, http.StatusOK, &e)
}

package offer

import "github.com/xenking/supermarket-receipt/internal/domain/product"

// Registry maps products to their special offer. A product has at most one
// offer; adding another replaces it.
type Registry struct {
	offers map[string]Offer
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{offers: make(map[string]Offer)}
}

// AddSpecialOffer installs o for p, overwriting any previous offer.
func (r *Registry) AddSpecialOffer(p product.Product, o Offer) {
	r.offers[p.Name] = o
}

// OfferFor returns the offer installed for p.
func (r *Registry) OfferFor(p product.Product) (Offer, bool) {
	o, ok := r.offers[p.Name]
	return o, ok
}

// Len reports the number of products with an offer.
func (r *Registry) Len() int {
	return len(r.offers)
}

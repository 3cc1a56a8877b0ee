package product

import (
	"slices"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var _ Catalog = (*MemoryCatalog)(nil)

// MemoryCatalog is a map-backed Catalog. It is populated before serving and
// must not be mutated while checkouts are in progress.
type MemoryCatalog struct {
	listings map[string]Listing
}

// NewMemoryCatalog creates a catalog holding the given listings.
func NewMemoryCatalog(listings ...Listing) *MemoryCatalog {
	c := &MemoryCatalog{listings: make(map[string]Listing, len(listings))}
	for _, l := range listings {
		c.AddProduct(l.Product, l.Price)
	}
	return c
}

// AddProduct installs or replaces the price of p.
func (c *MemoryCatalog) AddProduct(p Product, price decimal.Decimal) {
	c.listings[p.Name] = Listing{Product: p, Price: price}
}

// UnitPrice returns the price of one unit (piece or kilo) of p.
func (c *MemoryCatalog) UnitPrice(p Product) (decimal.Decimal, error) {
	l, ok := c.listings[p.Name]
	if !ok {
		return decimal.Zero, errors.Wrapf(ErrNotFound, "price %q", p.Name)
	}
	return l.Price, nil
}

// UnitOf returns the unit the catalog sells p in.
func (c *MemoryCatalog) UnitOf(p Product) (Unit, error) {
	l, ok := c.listings[p.Name]
	if !ok {
		return 0, errors.Wrapf(ErrNotFound, "unit %q", p.Name)
	}
	return l.Product.Unit, nil
}

// Lookup returns the catalog product registered under name.
func (c *MemoryCatalog) Lookup(name string) (Product, bool) {
	l, ok := c.listings[name]
	return l.Product, ok
}

// List returns every listing ordered by product name.
func (c *MemoryCatalog) List() []Listing {
	out := make([]Listing, 0, len(c.listings))
	for _, l := range c.listings {
		out = append(out, l)
	}
	slices.SortFunc(out, func(a, b Listing) int {
		return strings.Compare(a.Product.Name, b.Product.Name)
	})
	return out
}

// Len reports the number of priced products.
func (c *MemoryCatalog) Len() int {
	return len(c.listings)
}

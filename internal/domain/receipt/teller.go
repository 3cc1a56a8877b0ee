package receipt

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/xenking/supermarket-receipt/internal/domain/cart"
	"github.com/xenking/supermarket-receipt/internal/domain/offer"
	"github.com/xenking/supermarket-receipt/internal/domain/product"
)

// ProductNotFoundError indicates a cart entry the catalog cannot price.
type ProductNotFoundError struct {
	Product string
	err     error
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.Product)
}

func (e *ProductNotFoundError) Unwrap() error {
	if e.err != nil {
		return e.err
	}
	return product.ErrNotFound
}

// Offers looks up the special offer for a product.
type Offers interface {
	OfferFor(p product.Product) (offer.Offer, bool)
}

// Teller checks out carts against a catalog and a set of special offers.
type Teller struct {
	catalog product.Catalog
	offers  Offers
}

// NewTeller creates a Teller. Both collaborators are read-only during
// checkout.
func NewTeller(catalog product.Catalog, offers Offers) *Teller {
	return &Teller{
		catalog: catalog,
		offers:  offers,
	}
}

// aggregate is the summed quantity of one product across the cart.
type aggregate struct {
	product   product.Product
	unitPrice decimal.Decimal
	quantity  decimal.Decimal
}

// ChecksOutArticlesFrom prices every cart entry and applies at most one
// special offer per product to the product's total quantity in the cart.
// No receipt is returned when any entry cannot be priced.
func (t *Teller) ChecksOutArticlesFrom(c *cart.Cart) (*Receipt, error) {
	entries := c.Entries()

	r := &Receipt{items: make([]Item, 0, len(entries))}
	var (
		order  []string
		totals = make(map[string]*aggregate)
	)
	for _, e := range entries {
		price, err := t.catalog.UnitPrice(e.Product)
		if err != nil {
			return nil, &ProductNotFoundError{Product: e.Product.Name, err: err}
		}

		r.items = append(r.items, Item{
			Product:    e.Product,
			Quantity:   e.Quantity,
			Price:      price,
			TotalPrice: e.Quantity.Mul(price),
		})

		agg, ok := totals[e.Product.Name]
		if !ok {
			agg = &aggregate{product: e.Product, unitPrice: price, quantity: decimal.Zero}
			totals[e.Product.Name] = agg
			order = append(order, e.Product.Name)
		}
		agg.quantity = agg.quantity.Add(e.Quantity)
	}

	for _, name := range order {
		agg := totals[name]
		o, ok := t.offers.OfferFor(agg.product)
		if !ok {
			continue
		}
		amount, ok := offer.Evaluate(o, agg.unitPrice, agg.quantity)
		if !ok {
			continue
		}
		r.discounts = append(r.discounts, Discount{
			Product:     agg.product,
			Description: o.Description(),
			Amount:      amount,
		})
	}

	return r, nil
}

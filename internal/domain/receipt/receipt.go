// Package receipt turns a cart into a priced receipt.
package receipt

import (
	"github.com/shopspring/decimal"

	"github.com/xenking/supermarket-receipt/internal/domain/product"
)

// Item is a priced line for one cart entry.
type Item struct {
	Product    product.Product
	Quantity   decimal.Decimal
	Price      decimal.Decimal
	TotalPrice decimal.Decimal
}

// Discount is a special offer applied to one product. Amount is never
// positive.
type Discount struct {
	Product     product.Product
	Description string
	Amount      decimal.Decimal
}

// Receipt is the immutable result of a checkout.
type Receipt struct {
	items     []Item
	discounts []Discount
}

// Items returns the priced lines in cart order.
func (r *Receipt) Items() []Item {
	out := make([]Item, len(r.items))
	copy(out, r.items)
	return out
}

// Discounts returns the applied discounts ordered by the first appearance of
// their product in the cart.
func (r *Receipt) Discounts() []Discount {
	out := make([]Discount, len(r.discounts))
	copy(out, r.discounts)
	return out
}

// TotalPrice is the sum of all line totals plus all discount amounts.
func (r *Receipt) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range r.items {
		total = total.Add(item.TotalPrice)
	}
	for _, d := range r.discounts {
		total = total.Add(d.Amount)
	}
	return total
}

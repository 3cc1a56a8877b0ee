// Package cart holds the shopping cart a customer brings to the till.
package cart

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/supermarket-receipt/internal/domain/product"
)

// ErrInvalidQuantity is matched by every InvalidQuantityError.
var ErrInvalidQuantity = errors.New("quantity must be greater than 0")

// InvalidQuantityError indicates an attempt to add a non-positive quantity.
type InvalidQuantityError struct {
	Product  string
	Quantity decimal.Decimal
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0 for product %s, got %s", e.Product, e.Quantity)
}

func (e *InvalidQuantityError) Unwrap() error {
	return ErrInvalidQuantity
}

// Entry is one product/quantity pairing added to the cart.
type Entry struct {
	Product  product.Product
	Quantity decimal.Decimal
}

// Cart is an ordered list of entries. Adding the same product twice keeps
// two separate entries.
type Cart struct {
	entries []Entry
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddItem adds a single unit of p.
func (c *Cart) AddItem(p product.Product) {
	c.entries = append(c.entries, Entry{Product: p, Quantity: decimal.NewFromInt(1)})
}

// AddItemQuantity adds quantity units (pieces or kilos) of p.
func (c *Cart) AddItemQuantity(p product.Product, quantity decimal.Decimal) error {
	if !quantity.IsPositive() {
		return &InvalidQuantityError{Product: p.Name, Quantity: quantity}
	}
	c.entries = append(c.entries, Entry{Product: p, Quantity: quantity})
	return nil
}

// Entries returns the cart contents in insertion order.
func (c *Cart) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len reports the number of entries.
func (c *Cart) Len() int {
	return len(c.entries)
}

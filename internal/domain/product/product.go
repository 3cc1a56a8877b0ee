package product

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a product has no price in the catalog.
var ErrNotFound = errors.New("product not found")

// Unit describes how a product is measured at the till.
type Unit int

const (
	// UnitEach is sold by the piece.
	UnitEach Unit = iota
	// UnitWeighted is sold by weight (kilo).
	UnitWeighted
)

func (u Unit) String() string {
	switch u {
	case UnitEach:
		return "each"
	case UnitWeighted:
		return "weighted"
	default:
		return "unknown"
	}
}

// ParseUnit maps the stored unit name to a Unit. "kilo" is accepted as an
// alias for weighted products.
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "each":
		return UnitEach, nil
	case "weighted", "kilo":
		return UnitWeighted, nil
	default:
		return 0, errors.Errorf("unknown product unit %q", s)
	}
}

// Product is an item that can be put in a cart. Products are identified by
// name.
type Product struct {
	Name string
	Unit Unit
}

// Listing is a product together with its catalog unit price.
type Listing struct {
	Product Product
	Price   decimal.Decimal
}

// Catalog prices products. Implementations are read-only during checkout.
type Catalog interface {
	UnitPrice(p Product) (decimal.Decimal, error)
	UnitOf(p Product) (Unit, error)
}

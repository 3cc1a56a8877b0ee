package codec

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/supermarket-receipt/internal/domain/cart"
	"github.com/xenking/supermarket-receipt/internal/domain/product"
)

// Resolver finds the catalog product for a name.
type Resolver interface {
	Lookup(name string) (product.Product, bool)
}

// CartLine is one requested item. Lines without a quantity add a single
// unit.
type CartLine struct {
	Product  string
	Quantity decimal.Decimal
	hasQty   bool
}

// DecodeCartLines parses a cart request:
//
//	{"items":[{"product":"apples","quantity":2.5},{"product":"toothbrush"}]}
func DecodeCartLines(data []byte) ([]CartLine, error) {
	lines := []CartLine{}
	err := jx.DecodeBytes(data).Obj(func(d *jx.Decoder, key string) error {
		if key != "items" {
			return d.Skip()
		}
		return d.Arr(func(d *jx.Decoder) error {
			var line CartLine
			if err := d.Obj(func(d *jx.Decoder, key string) error {
				var err error
				switch key {
				case "product":
					line.Product, err = d.Str()
				case "quantity":
					line.Quantity, err = decodeDecimal(d)
					line.hasQty = true
				default:
					err = d.Skip()
				}
				return err
			}); err != nil {
				return err
			}
			if line.Product == "" {
				return errors.New("item product is required")
			}
			lines = append(lines, line)
			return nil
		})
	})
	if err != nil {
		return nil, malformed(err, "cart")
	}
	return lines, nil
}

// BuildCart adds lines to a new cart, taking product units from the catalog.
// Names the catalog does not know are kept so checkout can report them.
func BuildCart(lines []CartLine, catalog Resolver) (*cart.Cart, error) {
	c := cart.New()
	for _, line := range lines {
		p, ok := catalog.Lookup(line.Product)
		if !ok {
			p = product.Product{Name: line.Product, Unit: product.UnitEach}
		}
		if !line.hasQty {
			c.AddItem(p)
			continue
		}
		if err := c.AddItemQuantity(p, line.Quantity); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// DecodeCart parses a cart request and builds the cart.
func DecodeCart(data []byte, catalog Resolver) (*cart.Cart, error) {
	lines, err := DecodeCartLines(data)
	if err != nil {
		return nil, err
	}
	return BuildCart(lines, catalog)
}

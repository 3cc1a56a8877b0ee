package codec

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/supermarket-receipt/internal/domain/offer"
	"github.com/xenking/supermarket-receipt/internal/domain/product"
	"github.com/xenking/supermarket-receipt/internal/domain/receipt"
)

// Document is a catalog with its special offers.
//
//	{"products":[{"name":"apples","unit":"weighted","price":1.99}],
//	 "offers":[{"product":"apples","kind":"percent_off","value":10}]}
type Document struct {
	Products []product.Listing
	Offers   []offer.Record
}

// Catalog returns an in-memory catalog holding the document's products.
func (doc *Document) Catalog() *product.MemoryCatalog {
	return product.NewMemoryCatalog(doc.Products...)
}

// Registry returns the document's offers. Every offer must name a product
// listed in the document.
func (doc *Document) Registry() (*offer.Registry, error) {
	known := make(map[string]struct{}, len(doc.Products))
	for _, l := range doc.Products {
		known[l.Product.Name] = struct{}{}
	}
	for _, rec := range doc.Offers {
		if _, ok := known[rec.Product]; !ok {
			return nil, errors.Wrapf(product.ErrNotFound, "offer for %q", rec.Product)
		}
	}
	return offer.RegistryFromRecords(doc.Offers)
}

// DecodeDocument parses a catalog document.
func DecodeDocument(data []byte) (*Document, error) {
	var doc Document
	err := jx.DecodeBytes(data).Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "products":
			return d.Arr(func(d *jx.Decoder) error {
				l, err := decodeListing(d)
				if err != nil {
					return err
				}
				doc.Products = append(doc.Products, l)
				return nil
			})
		case "offers":
			return d.Arr(func(d *jx.Decoder) error {
				rec, err := decodeOffer(d)
				if err != nil {
					return err
				}
				doc.Offers = append(doc.Offers, rec)
				return nil
			})
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return nil, malformed(err, "catalog")
	}
	return &doc, nil
}

func decodeListing(d *jx.Decoder) (product.Listing, error) {
	var (
		l    product.Listing
		unit = "each"
	)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "name":
			l.Product.Name, err = d.Str()
		case "unit":
			unit, err = d.Str()
		case "price":
			l.Price, err = decodeDecimal(d)
		default:
			err = d.Skip()
		}
		return err
	})
	if err != nil {
		return l, err
	}
	if l.Product.Name == "" {
		return l, errors.New("product name is required")
	}
	if l.Price.IsNegative() {
		return l, errors.Errorf("product %q has negative price", l.Product.Name)
	}
	l.Product.Unit, err = product.ParseUnit(unit)
	return l, err
}

func decodeOffer(d *jx.Decoder) (offer.Record, error) {
	var rec offer.Record
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "product":
			rec.Product, err = d.Str()
		case "kind":
			var kind string
			kind, err = d.Str()
			rec.Kind = offer.Kind(kind)
		case "size":
			rec.Size, err = d.Int64()
		case "value":
			rec.Value, err = decodeDecimal(d)
		default:
			err = d.Skip()
		}
		return err
	})
	return rec, err
}

// EncodeListings writes the catalog listing returned by the product endpoint.
// Products with a special offer carry it under "offer".
func EncodeListings(e *jx.Encoder, listings []product.Listing, offers receipt.Offers) {
	e.ArrStart()
	for _, l := range listings {
		e.ObjStart()
		e.FieldStart("name")
		e.Str(l.Product.Name)
		e.FieldStart("unit")
		e.Str(l.Product.Unit.String())
		e.FieldStart("price")
		encodeDecimal(e, l.Price)
		if o, ok := offers.OfferFor(l.Product); ok {
			e.FieldStart("offer")
			e.ObjStart()
			e.FieldStart("kind")
			e.Str(string(o.Kind()))
			e.FieldStart("description")
			e.Str(o.Description())
			e.ObjEnd()
		}
		e.ObjEnd()
	}
	e.ArrEnd()
}

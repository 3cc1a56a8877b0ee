package offer

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/supermarket-receipt/internal/domain/product"
)

// Record is the stored form of an offer bound to a product.
type Record struct {
	Product string
	Kind    Kind
	Size    int64
	Value   decimal.Decimal
}

// Offer builds the variant described by r.
func (r Record) Offer() (Offer, error) {
	return New(r.Kind, r.Size, r.Value)
}

// RecordOf converts an offer back into its stored form.
func RecordOf(productName string, o Offer) Record {
	rec := Record{Product: productName, Kind: o.Kind()}
	switch o := o.(type) {
	case PercentOff:
		rec.Value = o.Percent
	case BundlePrice:
		rec.Size, rec.Value = o.Size, o.Price
	case BuyNGetFree:
		rec.Size, rec.Value = o.Size, o.FreePercent
	}
	return rec
}

// RegistryFromRecords builds a registry from stored offers. Later records for
// the same product replace earlier ones.
func RegistryFromRecords(records []Record) (*Registry, error) {
	r := NewRegistry()
	for _, rec := range records {
		o, err := rec.Offer()
		if err != nil {
			return nil, errors.Wrapf(err, "offer for %q", rec.Product)
		}
		r.AddSpecialOffer(product.Product{Name: rec.Product}, o)
	}
	return r, nil
}

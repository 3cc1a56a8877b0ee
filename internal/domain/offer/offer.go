// Package offer models special offers: one discount rule per product.
//
// Offer is a closed sum type. Each variant carries its own arguments and is
// evaluated by Evaluate against a unit price and the quantity of the product
// summed over the whole cart.
package offer

import (
	"fmt"
	"math"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Kind is the persisted name of an offer variant.
type Kind string

const (
	// KindPercentOff takes a percentage off every unit.
	KindPercentOff Kind = "percent_off"
	// KindBundlePrice sells every full bundle of Size units for a fixed price.
	KindBundlePrice Kind = "bundle_price"
	// KindBuyNGetFree takes FreePercent off one unit of every full bundle.
	KindBuyNGetFree Kind = "buy_n_get_free"
)

// ErrInvalidOffer is returned when an offer cannot be built from its
// persisted form.
var ErrInvalidOffer = errors.New("invalid offer")

var hundred = decimal.NewFromInt(100)

// MaxSize is the largest bundle size an offer can carry; sizes are stored as
// 32-bit integers.
const MaxSize = math.MaxInt32

// Offer is implemented by PercentOff, BundlePrice and BuyNGetFree only.
type Offer interface {
	Kind() Kind
	// Description is the text printed on the receipt next to the discount.
	Description() string

	offer()
}

// PercentOff takes Percent percent off the product.
type PercentOff struct {
	Percent decimal.Decimal
}

func (PercentOff) Kind() Kind { return KindPercentOff }

func (o PercentOff) Description() string {
	return o.Percent.String() + "% off"
}

func (PercentOff) offer() {}

// BundlePrice is an "N for X" offer: every full bundle of Size units costs
// Price instead of Size unit prices.
type BundlePrice struct {
	Size  int64
	Price decimal.Decimal
}

func (BundlePrice) Kind() Kind { return KindBundlePrice }

func (o BundlePrice) Description() string {
	return fmt.Sprintf("%d for %s", o.Size, o.Price)
}

func (BundlePrice) offer() {}

// BuyNGetFree takes FreePercent percent off one unit in every full bundle of
// Size units. BuyNGetFree{Size: 3, FreePercent: 100} is "3 for 2".
type BuyNGetFree struct {
	Size        int64
	FreePercent decimal.Decimal
}

func (BuyNGetFree) Kind() Kind { return KindBuyNGetFree }

func (o BuyNGetFree) Description() string {
	if o.FreePercent.Equal(hundred) {
		return fmt.Sprintf("%d for %d", o.Size, o.Size-1)
	}
	return fmt.Sprintf("buy %d, %s%% off one", o.Size, o.FreePercent)
}

func (BuyNGetFree) offer() {}

// TenPercentDiscount is PercentOff(10).
func TenPercentDiscount() PercentOff {
	return PercentOff{Percent: decimal.NewFromInt(10)}
}

// ThreeForTwo makes every third unit free.
func ThreeForTwo() BuyNGetFree {
	return BuyNGetFree{Size: 3, FreePercent: hundred}
}

// TwoForAmount sells two units for amount.
func TwoForAmount(amount decimal.Decimal) BundlePrice {
	return BundlePrice{Size: 2, Price: amount}
}

// FiveForAmount sells five units for amount.
func FiveForAmount(amount decimal.Decimal) BundlePrice {
	return BundlePrice{Size: 5, Price: amount}
}

// New builds the offer variant named by kind. Size is ignored by
// percentage offers.
func New(kind Kind, size int64, value decimal.Decimal) (Offer, error) {
	switch kind {
	case KindPercentOff:
		if !validPercent(value) {
			return nil, errors.Wrapf(ErrInvalidOffer, "percent %s out of range", value)
		}
		return PercentOff{Percent: value}, nil
	case KindBundlePrice:
		if size < 1 || size > MaxSize {
			return nil, errors.Wrapf(ErrInvalidOffer, "bundle size %d", size)
		}
		if value.IsNegative() {
			return nil, errors.Wrapf(ErrInvalidOffer, "negative bundle price %s", value)
		}
		return BundlePrice{Size: size, Price: value}, nil
	case KindBuyNGetFree:
		if size < 2 || size > MaxSize {
			return nil, errors.Wrapf(ErrInvalidOffer, "bundle size %d", size)
		}
		if !validPercent(value) {
			return nil, errors.Wrapf(ErrInvalidOffer, "free percent %s out of range", value)
		}
		return BuyNGetFree{Size: size, FreePercent: value}, nil
	default:
		return nil, errors.Wrapf(ErrInvalidOffer, "unsupported offer kind %q", kind)
	}
}

func validPercent(v decimal.Decimal) bool {
	return v.IsPositive() && v.LessThanOrEqual(hundred)
}

package offer

import "github.com/shopspring/decimal"

var zero = decimal.Zero

// Evaluate computes the discount o grants on quantity units at unitPrice.
// The returned amount is negative; ok is false when the offer does not apply
// (quantity below the bundle size, or an offer that saves nothing).
func Evaluate(o Offer, unitPrice, quantity decimal.Decimal) (amount decimal.Decimal, ok bool) {
	switch o := o.(type) {
	case PercentOff:
		amount = unitPrice.Mul(quantity).Mul(o.Percent).Div(hundred).Neg()
	case BundlePrice:
		full, rem, ok := bundles(quantity, o.Size)
		if !ok {
			return zero, false
		}
		discounted := full.Mul(o.Price).Add(rem.Mul(unitPrice))
		amount = discounted.Sub(unitPrice.Mul(quantity))
	case BuyNGetFree:
		full, _, ok := bundles(quantity, o.Size)
		if !ok {
			return zero, false
		}
		amount = full.Mul(unitPrice).Mul(o.FreePercent).Div(hundred).Neg()
	default:
		return zero, false
	}
	// Offers built as literals skip New's validation; never raise a total.
	if !amount.IsNegative() {
		return zero, false
	}
	return amount, true
}

// bundles splits quantity into whole bundles of size and the remainder.
func bundles(quantity decimal.Decimal, size int64) (full, rem decimal.Decimal, ok bool) {
	n := decimal.NewFromInt(size)
	if size < 1 || quantity.LessThan(n) {
		return zero, zero, false
	}
	full, rem = quantity.QuoRem(n, 0)
	return full, rem, true
}

// Package codec reads and writes the JSON documents exchanged by the receipt
// service and its tools: catalog documents, cart requests and receipts.
package codec

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// ErrMalformed is returned when a document is not valid JSON or has fields of
// the wrong type.
var ErrMalformed = errors.New("malformed document")

func malformed(err error, what string) error {
	return fmt.Errorf("decode %s: %w: %v", what, ErrMalformed, err)
}

// decodeDecimal reads a JSON number into a decimal from its literal text, so
// no digits are lost to float64.
func decodeDecimal(d *jx.Decoder) (decimal.Decimal, error) {
	if tt := d.Next(); tt != jx.Number {
		return decimal.Zero, errors.Errorf("expected number, got %s", tt)
	}
	num, err := d.Num()
	if err != nil {
		return decimal.Zero, err
	}
	v, err := decimal.NewFromString(num.String())
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "parse number")
	}
	return v, nil
}

// encodeDecimal writes v as a JSON number with all of its digits.
func encodeDecimal(e *jx.Encoder, v decimal.Decimal) {
	e.Raw([]byte(v.String()))
}

package codec

import (
	"github.com/go-faster/jx"

	"github.com/xenking/supermarket-receipt/internal/domain/receipt"
)

// EncodeReceipt writes r as the checkout response body.
func EncodeReceipt(e *jx.Encoder, id string, r *receipt.Receipt) {
	e.ObjStart()
	e.FieldStart("id")
	e.Str(id)

	e.FieldStart("items")
	e.ArrStart()
	for _, item := range r.Items() {
		e.ObjStart()
		e.FieldStart("product")
		e.Str(item.Product.Name)
		e.FieldStart("unit")
		e.Str(item.Product.Unit.String())
		e.FieldStart("quantity")
		encodeDecimal(e, item.Quantity)
		e.FieldStart("price")
		encodeDecimal(e, item.Price)
		e.FieldStart("total")
		encodeDecimal(e, item.TotalPrice)
		e.ObjEnd()
	}
	e.ArrEnd()

	e.FieldStart("discounts")
	e.ArrStart()
	for _, d := range r.Discounts() {
		e.ObjStart()
		e.FieldStart("product")
		e.Str(d.Product.Name)
		e.FieldStart("description")
		e.Str(d.Description)
		e.FieldStart("amount")
		encodeDecimal(e, d.Amount)
		e.ObjEnd()
	}
	e.ArrEnd()

	e.FieldStart("total")
	encodeDecimal(e, r.TotalPrice())
	e.ObjEnd()
}

// EncodeError writes the {"code","message"} error body.
func EncodeError(e *jx.Encoder, code int, message string) {
	e.ObjStart()
	e.FieldStart("code")
	e.Int(code)
	e.FieldStart("message")
	e.Str(message)
	e.ObjEnd()
}

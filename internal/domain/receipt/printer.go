package receipt

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/xenking/supermarket-receipt/internal/domain/product"
)

// DefaultColumns is the paper width of a till receipt.
const DefaultColumns = 40

var one = decimal.NewFromInt(1)

// Printer renders receipts as fixed-width text. Amounts are rounded to cents
// for display only.
type Printer struct {
	columns int
}

// NewPrinter returns a Printer for the given paper width. Non-positive widths
// fall back to DefaultColumns.
func NewPrinter(columns int) *Printer {
	if columns <= 0 {
		columns = DefaultColumns
	}
	return &Printer{columns: columns}
}

// Print renders r.
func (p *Printer) Print(r *Receipt) string {
	var b strings.Builder
	for _, item := range r.items {
		p.line(&b, item.Product.Name, item.TotalPrice.StringFixed(2))
		if !item.Quantity.Equal(one) {
			b.WriteString("  ")
			b.WriteString(item.Price.StringFixed(2))
			b.WriteString(" * ")
			b.WriteString(presentQuantity(item))
			b.WriteByte('\n')
		}
	}
	for _, d := range r.discounts {
		p.line(&b, d.Description+"("+d.Product.Name+")", d.Amount.StringFixed(2))
	}
	b.WriteByte('\n')
	p.line(&b, "Total:", r.TotalPrice().StringFixed(2))
	return b.String()
}

// line writes left and right separated by enough spaces to fill the row.
// Width is counted in runes.
func (p *Printer) line(b *strings.Builder, left, right string) {
	pad := p.columns - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if pad < 1 {
		pad = 1
	}
	b.WriteString(left)
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(right)
	b.WriteByte('\n')
}

func presentQuantity(item Item) string {
	if item.Product.Unit == product.UnitEach {
		return item.Quantity.Truncate(0).String()
	}
	return item.Quantity.StringFixed(3)
}

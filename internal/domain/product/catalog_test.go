package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCatalog(t *testing.T) {
	toothbrush := Product{Name: "toothbrush", Unit: UnitEach}
	apples := Product{Name: "apples", Unit: UnitWeighted}

	c := NewMemoryCatalog(Listing{Product: toothbrush, Price: decimal.RequireFromString("0.99")})
	c.AddProduct(apples, decimal.RequireFromString("1.99"))

	price, err := c.UnitPrice(apples)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1.99").Equal(price))

	unit, err := c.UnitOf(Product{Name: "apples"})
	require.NoError(t, err)
	assert.Equal(t, UnitWeighted, unit, "lookup is by name")

	_, err = c.UnitPrice(Product{Name: "caviar"})
	require.ErrorIs(t, err, ErrNotFound)
	_, err = c.UnitOf(Product{Name: "caviar"})
	require.ErrorIs(t, err, ErrNotFound)

	list := c.List()
	require.Len(t, list, 2)
	assert.Equal(t, "apples", list[0].Product.Name)
	assert.Equal(t, "toothbrush", list[1].Product.Name)

	p, ok := c.Lookup("toothbrush")
	require.True(t, ok)
	assert.Equal(t, toothbrush, p)
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in      string
		want    Unit
		wantErr bool
	}{
		{in: "each", want: UnitEach},
		{in: "weighted", want: UnitWeighted},
		{in: "kilo", want: UnitWeighted},
		{in: "litre", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseUnit(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if tt.in != "kilo" {
				assert.Equal(t, tt.in, got.String())
			}
		})
	}
}

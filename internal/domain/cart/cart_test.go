package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/supermarket-receipt/internal/domain/product"
)

var (
	toothbrush = product.Product{Name: "toothbrush", Unit: product.UnitEach}
	apples     = product.Product{Name: "apples", Unit: product.UnitWeighted}
)

func TestCart_AddItem(t *testing.T) {
	c := New()
	c.AddItem(toothbrush)
	c.AddItem(toothbrush)

	entries := c.Entries()
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, toothbrush, e.Product)
		assert.True(t, decimal.NewFromInt(1).Equal(e.Quantity))
	}
}

func TestCart_AddItemQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity decimal.Decimal
		wantErr  bool
	}{
		{name: "weighted fraction", quantity: decimal.RequireFromString("2.5")},
		{name: "whole number", quantity: decimal.NewFromInt(5)},
		{name: "zero", quantity: decimal.Zero, wantErr: true},
		{name: "negative", quantity: decimal.RequireFromString("-1"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			err := c.AddItemQuantity(apples, tt.quantity)

			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidQuantity)

				var iqErr *InvalidQuantityError
				require.ErrorAs(t, err, &iqErr)
				assert.Equal(t, "apples", iqErr.Product)
				assert.Zero(t, c.Len(), "rejected entry must not be added")
				return
			}

			require.NoError(t, err)
			require.Equal(t, 1, c.Len())
			assert.True(t, tt.quantity.Equal(c.Entries()[0].Quantity))
		})
	}
}

func TestCart_EntriesKeepInsertionOrder(t *testing.T) {
	c := New()
	require.NoError(t, c.AddItemQuantity(apples, decimal.NewFromInt(1)))
	c.AddItem(toothbrush)
	require.NoError(t, c.AddItemQuantity(apples, decimal.NewFromInt(2)))

	entries := c.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "apples", entries[0].Product.Name)
	assert.Equal(t, "toothbrush", entries[1].Product.Name)
	assert.Equal(t, "apples", entries[2].Product.Name)

	// Mutating the returned slice does not affect the cart.
	entries[0].Quantity = decimal.NewFromInt(100)
	assert.True(t, decimal.NewFromInt(1).Equal(c.Entries()[0].Quantity))
}

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/supermarket-receipt/internal/domain/product"
)

const testCatalog = `{
	"products": [
		{"name": "toothbrush", "price": 0.99},
		{"name": "apples", "unit": "weighted", "price": 1.99}
	],
	"offers": [
		{"product": "toothbrush", "kind": "buy_n_get_free", "size": 3, "value": 100}
	]
}`

func writeCatalog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o600))
	return path
}

func TestRun_Text(t *testing.T) {
	var out bytes.Buffer
	cart := strings.NewReader(`{"items":[{"product":"toothbrush","quantity":3}]}`)

	err := run(&out, cart, writeCatalog(t), "-", 30, false)
	require.NoError(t, err)

	assert.Equal(t, ""+
		"toothbrush                2.97\n"+
		"  0.99 * 3\n"+
		"3 for 2(toothbrush)      -0.99\n"+
		"\n"+
		"Total:                    1.98\n", out.String())
}

func TestRun_JSON(t *testing.T) {
	var out bytes.Buffer
	cart := strings.NewReader(`{"items":[{"product":"apples","quantity":0.5}]}`)

	err := run(&out, cart, writeCatalog(t), "-", 0, true)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "0.995")
	assert.True(t, strings.HasSuffix(out.String(), "\n"))
}

func TestRun_UnknownProduct(t *testing.T) {
	var out bytes.Buffer
	cart := strings.NewReader(`{"items":[{"product":"caviar"}]}`)

	err := run(&out, cart, writeCatalog(t), "-", 0, false)
	require.ErrorIs(t, err, product.ErrNotFound)
	assert.Empty(t, out.String())
}

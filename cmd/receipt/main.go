// Command receipt checks out a cart document against a catalog document and
// prints the receipt.
//
//	receipt --catalog db/seed/catalog.json --cart cart.json
//	echo '{"items":[{"product":"apples","quantity":1.5}]}' | receipt
package main

import (
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/google/uuid"

	"github.com/xenking/supermarket-receipt/internal/codec"
	"github.com/xenking/supermarket-receipt/internal/domain/receipt"
)

func main() {
	var (
		catalogFile string
		cartFile    string
		columns     int
		asJSON      bool
	)

	flag.StringVar(&catalogFile, "catalog", "db/seed/catalog.json", "path to catalog JSON document")
	flag.StringVar(&cartFile, "cart", "-", "path to cart JSON document, - for stdin")
	flag.IntVar(&columns, "columns", receipt.DefaultColumns, "receipt width")
	flag.BoolVar(&asJSON, "json", false, "print the receipt as JSON")
	flag.Parse()

	if err := run(os.Stdout, os.Stdin, catalogFile, cartFile, columns, asJSON); err != nil {
		slog.Error("checkout failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(out io.Writer, stdin io.Reader, catalogFile, cartFile string, columns int, asJSON bool) error {
	data, err := os.ReadFile(catalogFile)
	if err != nil {
		return errors.Wrap(err, "read catalog file")
	}
	doc, err := codec.DecodeDocument(data)
	if err != nil {
		return errors.Wrap(err, "parse catalog")
	}
	offers, err := doc.Registry()
	if err != nil {
		return errors.Wrap(err, "build offers")
	}
	catalog := doc.Catalog()

	var cartData []byte
	if cartFile == "-" {
		cartData, err = io.ReadAll(stdin)
	} else {
		cartData, err = os.ReadFile(cartFile)
	}
	if err != nil {
		return errors.Wrap(err, "read cart")
	}
	c, err := codec.DecodeCart(cartData, catalog)
	if err != nil {
		return errors.Wrap(err, "parse cart")
	}

	r, err := receipt.NewTeller(catalog, offers).ChecksOutArticlesFrom(c)
	if err != nil {
		return errors.Wrap(err, "checkout")
	}

	if asJSON {
		var e jx.Encoder
		e.SetIdent(2)
		codec.EncodeReceipt(&e, uuid.NewString(), r)
		if _, err = out.Write(e.Bytes()); err == nil {
			_, err = io.WriteString(out, "\n")
		}
	} else {
		_, err = io.WriteString(out, receipt.NewPrinter(columns).Print(r))
	}
	return errors.Wrap(err, "write receipt")
}

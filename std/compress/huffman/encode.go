package huffman

import (
	"context"
	"fmt"
	"io"

	"github.com/consensys/entropy/std/compress"
	"github.com/consensys/entropy/std/compress/bitstream"
)

// Encode writes the code of every symbol of r to w, in input order, then closes w.
// It returns the number of bits written. On failure w is left open and its content
// must be discarded.
func Encode(r compress.SymbolReader, table CodeTable, w bitstream.Writer) (uint64, error) {
	return EncodeContext(context.Background(), r, table, w)
}

// EncodeContext is Encode, aborted as soon as ctx is done.
func EncodeContext(ctx context.Context, r compress.SymbolReader, table CodeTable, w bitstream.Writer) (nbBits uint64, err error) {
	for {
		if err = ctx.Err(); err != nil {
			return
		}
		c, rErr := r.ReadSymbol()
		if rErr == io.EOF {
			break
		}
		if rErr != nil {
			return nbBits, fmt.Errorf("%w: %w", ErrSourceUnavailable, rErr)
		}
		code, ok := table.Lookup(c)
		if !ok {
			return nbBits, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbolString(c))
		}
		for _, b := range code {
			if err = w.WriteBool(b); err != nil {
				return nbBits, fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
			}
			nbBits++
		}
	}
	if err = w.Close(); err != nil {
		return nbBits, fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
	}
	return nbBits, nil
}

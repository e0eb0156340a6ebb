package huffman

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/consensys/entropy/std/compress"
	"github.com/consensys/entropy/std/compress/bitstream"
)

// Decode walks t from the root for every bit of r, emitting a symbol to w whenever a leaf
// is reached. It returns the number of symbols emitted. A stream that ends away from the
// root yields ErrMalformedStream; the trailing bits are never emitted as a symbol.
func Decode(r bitstream.Reader, t *Tree, w compress.SymbolWriter) (uint64, error) {
	return DecodeContext(context.Background(), r, t, w)
}

// DecodeContext is Decode, aborted as soon as ctx is done.
func DecodeContext(ctx context.Context, r bitstream.Reader, t *Tree, w compress.SymbolWriter) (nbSymbols uint64, err error) {
	if t == nil || t.root == nil {
		return 0, ErrEmptyAlphabet
	}
	if leaf, ok := t.root.(*Leaf); ok {
		return decodeSingleLeaf(ctx, r, leaf.Symbol, w)
	}

	cursor := t.root
	depth := 0
	for {
		if depth == 0 {
			if err = ctx.Err(); err != nil {
				return
			}
		}
		b, rErr := r.ReadBool()
		if rErr == io.EOF {
			break
		}
		if rErr != nil {
			return nbSymbols, readError(rErr, nbSymbols)
		}

		n := cursor.(*Internal) // the cursor goes back to the root as soon as it hits a leaf
		if b {
			cursor = n.Right
		} else {
			cursor = n.Left
		}
		depth++

		leaf, ok := cursor.(*Leaf)
		if !ok {
			continue
		}
		if err = w.WriteSymbol(leaf.Symbol); err != nil {
			return nbSymbols, fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
		}
		nbSymbols++
		cursor, depth = t.root, 0
	}

	if depth != 0 {
		return nbSymbols, fmt.Errorf("%w: stream ends %d bits into a code after %d symbols", ErrMalformedStream, depth, nbSymbols)
	}
	return nbSymbols, nil
}

// decodeSingleLeaf mirrors the degenerate code table: every 0 bit is one occurrence of the symbol.
func decodeSingleLeaf(ctx context.Context, r bitstream.Reader, s compress.Symbol, w compress.SymbolWriter) (nbSymbols uint64, err error) {
	for {
		if err = ctx.Err(); err != nil {
			return
		}
		b, rErr := r.ReadBool()
		if rErr == io.EOF {
			return nbSymbols, nil
		}
		if rErr != nil {
			return nbSymbols, readError(rErr, nbSymbols)
		}
		if b {
			return nbSymbols, fmt.Errorf("%w: bit 1 after %d symbols of a single symbol stream", ErrMalformedStream, nbSymbols)
		}
		if err = w.WriteSymbol(s); err != nil {
			return nbSymbols, fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
		}
		nbSymbols++
	}
}

func readError(err error, nbSymbols uint64) error {
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: source truncated after %d symbols: %w", ErrMalformedStream, nbSymbols, err)
	}
	return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
}

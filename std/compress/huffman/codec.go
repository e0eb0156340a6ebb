package huffman

import (
	"context"
	"fmt"
	"io"
	"math/bits"

	"github.com/consensys/entropy/std/compress"
	"github.com/consensys/entropy/std/compress/bitstream"
)

// Codec bundles the frequencies, tree and code table derived from one input.
type Codec struct {
	Alphabet compress.Alphabet
	Freq     Frequencies
	Tree     *Tree
	Table    CodeTable
}

// NewCodec makes a first pass over in to derive the coder.
func NewCodec(in compress.Stream) (*Codec, error) {
	freq, err := Count(in.Reader())
	if err != nil {
		return nil, err
	}
	return NewCodecFromFrequencies(freq, in.Alphabet)
}

func NewCodecFromFrequencies(freq Frequencies, alphabet compress.Alphabet) (*Codec, error) {
	t, err := NewTree(freq)
	if err != nil {
		return nil, err
	}
	return &Codec{
		Alphabet: alphabet,
		Freq:     freq,
		Tree:     t,
		Table:    NewCodeTable(t),
	}, nil
}

// Stats describes one compression.
type Stats struct {
	NbSymbols  uint64 `cbor:"symbols"`
	NbDistinct int    `cbor:"distinct"`
	RawBytes   int    `cbor:"rawBytes"`
	NbBits     uint64 `cbor:"bits"`
	// FixedWidthBits is the size of the input coded with equal length codes over its distinct symbols.
	FixedWidthBits uint64 `cbor:"fixedWidthBits"`
	MaxCodeLen     int    `cbor:"maxCodeLen"`
}

// Ratio is compressed size over raw size.
func (s Stats) Ratio() float64 {
	if s.RawBytes == 0 {
		return 0
	}
	return float64((s.NbBits+7)/8) / float64(s.RawBytes)
}

// fixedWidth is the number of bits per symbol of an equal length code over n symbols.
func fixedWidth(n int) int {
	return max(bits.Len(uint(n-1)), 1)
}

func (c *Codec) stats(in compress.Stream, nbBits uint64) Stats {
	n := uint64(in.Len())
	return Stats{
		NbSymbols:      n,
		NbDistinct:     len(c.Table),
		RawBytes:       in.RawLen(),
		NbBits:         nbBits,
		FixedWidthBits: n * uint64(fixedWidth(len(c.Table))),
		MaxCodeLen:     c.Table.MaxLen(),
	}
}

// EncodeStream encodes in into an in-memory bit buffer.
func (c *Codec) EncodeStream(in compress.Stream) (*bitstream.Buffer, error) {
	var b bitstream.Buffer
	if _, err := Encode(in.Reader(), c.Table, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// DecodeBuffer decodes an in-memory bit buffer.
func (c *Codec) DecodeBuffer(b *bitstream.Buffer) (compress.Stream, error) {
	out := compress.Stream{Alphabet: c.Alphabet}
	if _, err := Decode(b.Reader(), c.Tree, &out); err != nil {
		return compress.Stream{}, err
	}
	return out, nil
}

// Compress makes the second pass over in, packing the bits into w.
// Stats.NbBits must be passed on to Decompress, the padding of the last byte being ambiguous.
func (c *Codec) Compress(ctx context.Context, in compress.Stream, w io.Writer) (Stats, error) {
	nbBits, err := EncodeContext(ctx, in.Reader(), c.Table, bitstream.NewWriter(w))
	if err != nil {
		return Stats{}, err
	}
	return c.stats(in, nbBits), nil
}

// Decompress reads nbBits bits from r and writes the decoded symbols to w.
func (c *Codec) Decompress(ctx context.Context, r io.Reader, nbBits uint64, w io.Writer) (uint64, error) {
	sw := compress.NewWriter(w, c.Alphabet)
	n, err := DecodeContext(ctx, bitstream.NewReader(r, nbBits), c.Tree, sw)
	if err != nil {
		return n, err
	}
	if err = sw.Flush(); err != nil {
		return n, fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
	}
	return n, nil
}

// Package test provides assertions shared by the coder tests.
package test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/consensys/entropy/std/compress"
	"github.com/consensys/entropy/std/compress/huffman"
)

// Assert wraps require.Assertions with coder specific checks.
type Assert struct {
	t *testing.T
	*require.Assertions
}

// NewAssert returns an Assert helper embedding a testify/require object for convenience
func NewAssert(t *testing.T) *Assert {
	return &Assert{t, require.New(t)}
}

// RoundTrip builds a coder for d, checks every invariant the coder guarantees, and
// returns the coder for further inspection.
func (assert *Assert) RoundTrip(d []byte, alphabet compress.Alphabet) *huffman.Codec {
	assert.t.Helper()

	in := compress.NewStream(d, alphabet)
	codec, err := huffman.NewCodec(in)
	assert.NoError(err, "building coder")

	assert.FrequencySum(codec.Freq, in.Len())
	assert.PrefixFree(codec.Table)
	assert.Equal(codec.Tree.NbLeaves(), len(codec.Table))

	b, err := codec.EncodeStream(in)
	assert.NoError(err, "encoding")
	expectedLen, err := codec.Table.EncodedLen(codec.Freq)
	assert.NoError(err)
	assert.Equal(expectedLen, b.Len(), "encoded length")

	out, err := codec.DecodeBuffer(b)
	assert.NoError(err, "decoding")
	assert.Equal(in.D, out.D, "round trip")

	var packed, unpacked bytes.Buffer
	stats, err := codec.Compress(context.Background(), in, &packed)
	assert.NoError(err, "compressing")
	assert.Equal(b.Len(), stats.NbBits)
	_, err = codec.Decompress(context.Background(), &packed, stats.NbBits, &unpacked)
	assert.NoError(err, "decompressing")
	assert.Equal(in.Bytes(), unpacked.Bytes(), "packed round trip")

	return codec
}

// FrequencySum checks that the counts add up to the number of symbols read.
func (assert *Assert) FrequencySum(freq huffman.Frequencies, nbSymbols int) {
	assert.t.Helper()
	assert.Equal(uint64(nbSymbols), freq.Total(), "frequency sum")
	for s, n := range freq {
		assert.NotZero(n, "symbol %d has a zero count", s)
	}
}

// PrefixFree checks that no code of the table is a prefix of another.
func (assert *Assert) PrefixFree(table huffman.CodeTable) {
	assert.t.Helper()
	symbs := table.Symbols()
	for _, a := range symbs {
		assert.NotZero(table[a].Len(), "empty code for %d", a)
		for _, b := range symbs {
			if a == b {
				continue
			}
			assert.False(table[a].HasPrefix(table[b]), "code of %d (%s) starts with code of %d (%s)", a, table[a], b, table[b])
		}
	}
}

package huffman_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/consensys/entropy/std/compress"
	"github.com/consensys/entropy/std/compress/huffman"
	"github.com/consensys/entropy/test"
)

func newProperties() *gopter.Properties {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	return gopter.NewProperties(parameters)
}

func roundTrips(d []byte, alphabet compress.Alphabet) bool {
	in := compress.NewStream(d, alphabet)
	codec, err := huffman.NewCodec(in)
	if err != nil {
		return false
	}
	b, err := codec.EncodeStream(in)
	if err != nil {
		return false
	}
	out, err := codec.DecodeBuffer(b)
	if err != nil {
		return false
	}
	return bytes.Equal(d, out.Bytes())
}

func TestRoundTripProperty(t *testing.T) {
	properties := newProperties()

	properties.Property("bytes over a small alphabet round trip", prop.ForAll(
		func(head byte, tail []byte) bool {
			return roundTrips(append([]byte{head}, tail...), compress.Bytes)
		},
		gen.UInt8Range(0, 7),
		gen.SliceOf(gen.UInt8Range(0, 7)),
	))

	properties.Property("arbitrary bytes round trip", prop.ForAll(
		func(head byte, tail []byte) bool {
			return roundTrips(append([]byte{head}, tail...), compress.Bytes)
		},
		gen.UInt8(),
		gen.SliceOf(gen.UInt8()),
	))

	properties.Property("text round trips as runes", prop.ForAll(
		func(s string) bool {
			return roundTrips([]byte("é"+s), compress.Runes)
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

func TestFrequencySumProperty(t *testing.T) {
	properties := newProperties()

	properties.Property("counts add up to the input length", prop.ForAll(
		func(d []byte) bool {
			freq, err := huffman.Count(compress.NewStream(d, compress.Bytes).Reader())
			if err != nil {
				return false
			}
			for _, n := range freq {
				if n == 0 {
					return false
				}
			}
			return freq.Total() == uint64(len(d))
		},
		gen.SliceOf(gen.UInt8Range(0, 15)),
	))

	properties.TestingRun(t)
}

func frequencies(weights []uint64) huffman.Frequencies {
	freq := make(huffman.Frequencies, len(weights))
	for i, w := range weights {
		freq[compress.Symbol(i)] = w
	}
	return freq
}

func TestPrefixFreeProperty(t *testing.T) {
	properties := newProperties()

	properties.Property("no code is a prefix of another", prop.ForAll(
		func(weights []uint64) bool {
			if len(weights) == 0 {
				return true
			}
			tree, err := huffman.NewTree(frequencies(weights))
			if err != nil {
				return false
			}
			table := huffman.NewCodeTable(tree)
			if len(table) != len(weights) {
				return false
			}
			for a, ca := range table {
				for b, cb := range table {
					if a != b && ca.HasPrefix(cb) {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(gen.UInt64Range(1, 1000)),
	))

	properties.TestingRun(t)
}

// minCost finds the cheapest code lengths satisfying Kraft's inequality by exhaustive search.
// Any such lengths are achievable by a prefix code.
func minCost(weights []uint64) uint64 {
	n := len(weights)
	maxLen := n - 1
	best := uint64(math.MaxUint64)
	var search func(i int, kraft uint64, cost uint64)
	search = func(i int, kraft uint64, cost uint64) {
		if kraft > 1<<maxLen || cost >= best {
			return
		}
		if i == n {
			best = cost
			return
		}
		for l := 1; l <= maxLen; l++ {
			search(i+1, kraft+1<<(maxLen-l), cost+weights[i]*uint64(l))
		}
	}
	search(0, 0, 0)
	return best
}

func TestOptimalityProperty(t *testing.T) {
	properties := newProperties()

	properties.Property("weighted path length is minimal", prop.ForAll(
		func(n int, weights []uint64) bool {
			weights = weights[:n]
			tree, err := huffman.NewTree(frequencies(weights))
			if err != nil {
				return false
			}
			return tree.WeightedPathLength() == minCost(weights)
		},
		gen.IntRange(2, 6),
		gen.SliceOfN(6, gen.UInt64Range(1, 50)),
	))

	properties.Property("encoded length matches the code table", prop.ForAll(
		func(head byte, tail []byte) bool {
			in := compress.NewStream(append([]byte{head}, tail...), compress.Bytes)
			codec, err := huffman.NewCodec(in)
			if err != nil {
				return false
			}
			b, err := codec.EncodeStream(in)
			if err != nil {
				return false
			}
			var expected uint64
			for _, c := range in.D {
				expected += uint64(codec.Table[c].Len())
			}
			return b.Len() == expected
		},
		gen.UInt8Range(0, 31),
		gen.SliceOf(gen.UInt8Range(0, 31)),
	))

	properties.TestingRun(t)
}

func TestInvariants(t *testing.T) {
	assert := test.NewAssert(t)
	for _, s := range []string{
		"aaaa",
		"ab",
		"aaaab",
		"abracadabra",
		"It is a truth universally acknowledged, that a single man in possession of a good fortune, must be in want of a wife.",
	} {
		assert.RoundTrip([]byte(s), compress.Bytes)
		assert.RoundTrip([]byte(s), compress.Runes)
	}
}

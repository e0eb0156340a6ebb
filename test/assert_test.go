package test

import (
	"testing"

	"github.com/consensys/entropy/std/compress"
	"github.com/consensys/entropy/std/compress/huffman"
)

func TestRoundTrip(t *testing.T) {
	assert := NewAssert(t)
	codec := assert.RoundTrip([]byte("aaaa"), compress.Bytes)
	assert.True(codec.Tree.IsDegenerate())

	assert.RoundTrip([]byte("hello, world"), compress.Bytes)
	assert.RoundTrip([]byte("hello, 世界"), compress.Runes)
}

func TestPrefixFreeTextbookTable(t *testing.T) {
	tree, err := huffman.NewTree(huffman.Frequencies{'a': 45, 'b': 13, 'c': 12, 'd': 16, 'e': 9, 'f': 5})
	NewAssert(t).NoError(err)
	NewAssert(t).PrefixFree(huffman.NewCodeTable(tree))
}

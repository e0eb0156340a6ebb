package huffman

import (
	"fmt"
	"strings"

	"github.com/consensys/entropy/std/compress"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Code is a bit string, first emitted bit first. true stands for 1.
type Code []bool

func (c Code) Len() int {
	return len(c)
}

// HasPrefix reports whether p is a prefix of c
func (c Code) HasPrefix(p Code) bool {
	return len(p) <= len(c) && slices.Equal(c[:len(p)], p)
}

func (c Code) String() string {
	var sb strings.Builder
	sb.Grow(len(c))
	for _, b := range c {
		if b {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// CodeTable maps every leaf symbol of a tree to its code.
type CodeTable map[compress.Symbol]Code

// NewCodeTable derives codes from root to leaf paths: 0 on the left, 1 on the right.
// The single leaf of a degenerate tree is given the code "0".
func NewCodeTable(t *Tree) CodeTable {
	codes := make(CodeTable, t.nbLeaves)
	if leaf, ok := t.root.(*Leaf); ok {
		codes[leaf.Symbol] = Code{false}
		return codes
	}
	traverse(t.root, make(Code, 0, 16), codes)
	return codes
}

func traverse(node Node, code Code, codes CodeTable) {
	switch n := node.(type) {
	case *Leaf:
		codes[n.Symbol] = slices.Clone(code)
	case *Internal:
		traverse(n.Left, append(code, false), codes)
		traverse(n.Right, append(code, true), codes)
	}
}

func (c CodeTable) Lookup(s compress.Symbol) (Code, bool) {
	code, ok := c[s]
	return code, ok
}

// Symbols returns the symbols covered by the table in ascending order.
func (c CodeTable) Symbols() []compress.Symbol {
	symbs := maps.Keys(c)
	slices.Sort(symbs)
	return symbs
}

// MaxLen is the length of the longest code.
func (c CodeTable) MaxLen() int {
	res := 0
	for _, code := range c {
		res = max(res, len(code))
	}
	return res
}

// EncodedLen is the number of bits Encode produces for an input with the given frequencies.
func (c CodeTable) EncodedLen(freq Frequencies) (uint64, error) {
	var res uint64
	for s, n := range freq {
		code, ok := c[s]
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrUnknownSymbol, symbolString(s))
		}
		res += n * uint64(len(code))
	}
	return res, nil
}

func symbolString(s compress.Symbol) string {
	return fmt.Sprintf("%q (%d)", rune(s), s)
}

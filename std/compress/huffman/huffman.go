// Package huffman implements a static Huffman coder over bytes or Unicode code points.
//
// A coder is derived in three steps: Count the symbols of an input, build a Tree from
// the counts with NewTree, and derive a CodeTable from the tree. Encode then turns a
// symbol sequence into bits using the table, and Decode turns the bits back into
// symbols by walking the same tree. Neither the tree nor the table is written to the
// bit stream: the decoder must be handed the tree the encoder used.
//
// Tree construction is deterministic. Equal weights are ordered by number of leaves,
// then by creation order, where leaves are created in ascending symbol order and every
// merge creates the next node. The first tree taken off the heap becomes the left (0) child.
//
// A tree with a single leaf gets the one-bit code "0".
package huffman

import (
	"github.com/consensys/entropy/std/compress"
)

// Node is a Huffman tree node: either a *Leaf or an *Internal.
type Node interface {
	// Weight is the total frequency of the leaves below the node.
	Weight() uint64
	sealed()
}

// Leaf carries a symbol and its frequency.
type Leaf struct {
	Symbol compress.Symbol
	Freq   uint64
}

// Internal has exactly two children and carries no symbol.
type Internal struct {
	Freq        uint64
	Left, Right Node
}

func (l *Leaf) Weight() uint64     { return l.Freq }
func (n *Internal) Weight() uint64 { return n.Freq }
func (*Leaf) sealed()              {}
func (*Internal) sealed()          {}

// Tree is an immutable Huffman tree.
type Tree struct {
	root     Node
	nbLeaves int
}

// NewTree builds an optimal prefix code tree for the given frequencies.
func NewTree(freq Frequencies) (*Tree, error) {
	if len(freq) == 0 {
		return nil, ErrEmptyAlphabet
	}

	symbs := freq.Symbols()
	nodes := make(minHeap, len(symbs), 2*len(symbs)-1)
	for i, s := range symbs {
		nodes[i] = heapItem{node: &Leaf{Symbol: s, Freq: freq[s]}, nbLeaves: 1, seq: i}
	}
	seq := len(nodes)

	nodes.heapify()

	for len(nodes) > 1 {
		a := nodes.popHead()
		b := nodes.popHead()

		nodes.push(heapItem{
			node:     &Internal{Freq: a.node.Weight() + b.node.Weight(), Left: a.node, Right: b.node},
			nbLeaves: a.nbLeaves + b.nbLeaves,
			seq:      seq,
		})
		seq++
	}

	return &Tree{root: nodes[0].node, nbLeaves: nodes[0].nbLeaves}, nil
}

func (t *Tree) Root() Node {
	return t.root
}

func (t *Tree) NbLeaves() int {
	return t.nbLeaves
}

// IsDegenerate reports whether the tree is a single leaf.
func (t *Tree) IsDegenerate() bool {
	_, ok := t.root.(*Leaf)
	return ok
}

type stackElem struct {
	node  Node
	depth int
}

// Walk calls f on every leaf with its depth, left to right.
func (t *Tree) Walk(f func(leaf *Leaf, depth int)) {
	stack := make([]stackElem, 0, t.nbLeaves)
	stack = append(stack, stackElem{t.root, 0})
	for len(stack) > 0 {
		// pop stack
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch n := e.node.(type) {
		case *Leaf:
			f(n, e.depth)
		case *Internal:
			stack = append(stack, stackElem{n.Right, e.depth + 1}, stackElem{n.Left, e.depth + 1})
		}
	}
}

// Depth is the length of the longest root to leaf path.
func (t *Tree) Depth() int {
	depth := 0
	t.Walk(func(_ *Leaf, d int) {
		depth = max(depth, d)
	})
	return depth
}

// CodeLengths returns the depth of every leaf. The single leaf of a degenerate tree has length 1.
func (t *Tree) CodeLengths() map[compress.Symbol]int {
	lengths := make(map[compress.Symbol]int, t.nbLeaves)
	t.Walk(func(l *Leaf, d int) {
		lengths[l.Symbol] = max(d, 1)
	})
	return lengths
}

// WeightedPathLength is Σ frequency × depth over the leaves, the quantity Huffman trees minimize.
func (t *Tree) WeightedPathLength() uint64 {
	var res uint64
	t.Walk(func(l *Leaf, d int) {
		res += l.Freq * uint64(d)
	})
	return res
}

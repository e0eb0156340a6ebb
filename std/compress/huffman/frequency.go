package huffman

import (
	"fmt"
	"io"

	"github.com/consensys/entropy/std/compress"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Frequencies maps every symbol that occurs in an input to its number of occurrences.
// Symbols that do not occur are absent.
type Frequencies map[compress.Symbol]uint64

// Count reads r to the end and tallies its symbols.
// On a read failure nothing is returned but the error, wrapped in ErrSourceUnavailable.
func Count(r compress.SymbolReader) (Frequencies, error) {
	freq := make(Frequencies)
	for {
		c, err := r.ReadSymbol()
		if err == io.EOF {
			return freq, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		}
		freq[c]++
	}
}

// Total is the number of symbols counted
func (f Frequencies) Total() uint64 {
	var total uint64
	for _, n := range f {
		total += n
	}
	return total
}

// Symbols returns the distinct symbols in ascending order.
func (f Frequencies) Symbols() []compress.Symbol {
	symbs := maps.Keys(f)
	slices.Sort(symbs)
	return symbs
}

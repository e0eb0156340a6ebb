package compress

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// Symbol is a single unit of an input alphabet: a byte or a Unicode code point.
type Symbol rune

// Alphabet selects how raw input bytes are cut into symbols.
type Alphabet uint8

const (
	// Bytes reads every byte as one symbol (256 values).
	Bytes Alphabet = iota
	// Runes reads UTF-8 encoded code points. Invalid encodings read as utf8.RuneError,
	// the same way bufio.Reader.ReadRune does, so they do not survive a round trip.
	Runes
)

var errInvalidAlphabet = errors.New("invalid alphabet")

func ParseAlphabet(s string) (Alphabet, error) {
	switch s {
	case "bytes", "byte":
		return Bytes, nil
	case "runes", "rune", "utf8":
		return Runes, nil
	}
	return 0, fmt.Errorf("%w %q", errInvalidAlphabet, s)
}

func (a Alphabet) String() string {
	switch a {
	case Bytes:
		return "bytes"
	case Runes:
		return "runes"
	}
	return fmt.Sprintf("Alphabet(%d)", uint8(a))
}

// Contains reports whether s is a valid symbol of the alphabet
func (a Alphabet) Contains(s Symbol) bool {
	switch a {
	case Bytes:
		return s >= 0 && s <= 0xFF
	case Runes:
		return utf8.ValidRune(rune(s))
	}
	return false
}

// SymbolReader yields symbols front to back and returns io.EOF once the sequence is exhausted.
type SymbolReader interface {
	ReadSymbol() (Symbol, error)
}

// SymbolWriter accepts symbols in order.
type SymbolWriter interface {
	WriteSymbol(Symbol) error
}

// Stream is an in-memory symbol sequence. Unlike a SymbolReader over an io.Reader
// it can be read any number of times, which is what two-pass coders need.
type Stream struct {
	D        []Symbol
	Alphabet Alphabet
}

// NewStream cuts d into symbols of the given alphabet
func NewStream(d []byte, alphabet Alphabet) Stream {
	s := Stream{Alphabet: alphabet}
	switch alphabet {
	case Runes:
		s.D = make([]Symbol, 0, utf8.RuneCount(d))
		for len(d) > 0 {
			r, size := utf8.DecodeRune(d)
			s.D = append(s.D, Symbol(r))
			d = d[size:]
		}
	default:
		s.D = make([]Symbol, len(d))
		for i, b := range d {
			s.D[i] = Symbol(b)
		}
	}
	return s
}

// ReadAll buffers the whole of r in memory. The memory bound is the price of
// reading a non-rewindable source twice.
func ReadAll(r io.Reader, alphabet Alphabet) (Stream, error) {
	d, err := io.ReadAll(r)
	if err != nil {
		return Stream{}, err
	}
	return NewStream(d, alphabet), nil
}

func (s Stream) Len() int {
	return len(s.D)
}

// Reader returns a fresh reader positioned at the start of the stream.
func (s Stream) Reader() SymbolReader {
	return &streamReader{d: s.D}
}

// WriteSymbol appends a symbol to the stream.
func (s *Stream) WriteSymbol(c Symbol) error {
	if !s.Alphabet.Contains(c) {
		return fmt.Errorf("symbol %d out of %s alphabet", c, s.Alphabet)
	}
	s.D = append(s.D, c)
	return nil
}

// Bytes serializes the stream back to its raw form.
// It panics if D holds a symbol outside the alphabet; use Writer to get an error instead.
func (s Stream) Bytes() []byte {
	var bb bytes.Buffer
	w := NewWriter(&bb, s.Alphabet)
	for _, c := range s.D {
		if err := w.WriteSymbol(c); err != nil {
			panic(err)
		}
	}
	if err := w.Flush(); err != nil {
		panic(err)
	}
	return bb.Bytes()
}

// RawLen is the size in bytes of the serialized stream.
func (s Stream) RawLen() int {
	if s.Alphabet == Bytes {
		return len(s.D)
	}
	n := 0
	for _, c := range s.D {
		n += utf8.RuneLen(rune(c))
	}
	return n
}

type streamReader struct {
	d []Symbol
}

func (r *streamReader) ReadSymbol() (Symbol, error) {
	if len(r.d) == 0 {
		return 0, io.EOF
	}
	c := r.d[0]
	r.d = r.d[1:]
	return c, nil
}

// NewReader reads symbols of the given alphabet lazily from r.
func NewReader(r io.Reader, alphabet Alphabet) SymbolReader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	if alphabet == Runes {
		return runeReader{br}
	}
	return byteReader{br}
}

type byteReader struct {
	r *bufio.Reader
}

func (r byteReader) ReadSymbol() (Symbol, error) {
	b, err := r.r.ReadByte()
	return Symbol(b), err
}

type runeReader struct {
	r *bufio.Reader
}

func (r runeReader) ReadSymbol() (Symbol, error) {
	c, _, err := r.r.ReadRune()
	return Symbol(c), err
}

// Writer serializes symbols to an io.Writer. Flush must be called once done.
type Writer struct {
	w        *bufio.Writer
	alphabet Alphabet
}

func NewWriter(w io.Writer, alphabet Alphabet) *Writer {
	return &Writer{w: bufio.NewWriter(w), alphabet: alphabet}
}

func (w *Writer) WriteSymbol(c Symbol) error {
	if !w.alphabet.Contains(c) {
		return fmt.Errorf("symbol %d out of %s alphabet", c, w.alphabet)
	}
	if w.alphabet == Runes {
		_, err := w.w.WriteRune(rune(c))
		return err
	}
	return w.w.WriteByte(byte(c))
}

func (w *Writer) Flush() error {
	return w.w.Flush()
}

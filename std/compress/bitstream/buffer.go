package bitstream

import (
	"io"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Buffer is an in-memory bit stream of exact length. The zero value is empty and ready to use.
type Buffer struct {
	bits bitset.BitSet
	n    uint
}

// ParseBuffer builds a buffer from a string of '0' and '1'; any other character panics.
func ParseBuffer(s string) *Buffer {
	var b Buffer
	for _, c := range s {
		switch c {
		case '0':
			b.push(false)
		case '1':
			b.push(true)
		default:
			panic("invalid bit " + string(c))
		}
	}
	return &b
}

func (b *Buffer) push(v bool) {
	b.bits.SetTo(b.n, v)
	b.n++
}

func (b *Buffer) WriteBool(v bool) error {
	b.push(v)
	return nil
}

// Close is a no-op; a Buffer has no partially filled storage unit.
func (b *Buffer) Close() error {
	return nil
}

func (b *Buffer) Len() uint64 {
	return uint64(b.n)
}

// Test returns the i-th bit
func (b *Buffer) Test(i uint64) bool {
	if i >= uint64(b.n) {
		panic("bit index out of range")
	}
	return b.bits.Test(uint(i))
}

// Truncate drops every bit from position n on.
func (b *Buffer) Truncate(n uint64) {
	if n < uint64(b.n) {
		b.n = uint(n)
	}
}

// Reader returns a reader over the current content of the buffer.
func (b *Buffer) Reader() *BufferReader {
	return &BufferReader{b: b, end: b.n}
}

// WriteTo packs the buffer into w, padding the last byte with zeros.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	cw := countingWriter{w: w}
	sw := NewWriter(&cw)
	for i := uint(0); i < b.n; i++ {
		if err := sw.WriteBool(b.bits.Test(i)); err != nil {
			return cw.n, err
		}
	}
	err := sw.Close()
	return cw.n, err
}

func (b *Buffer) String() string {
	var sb strings.Builder
	sb.Grow(int(b.n))
	for i := uint(0); i < b.n; i++ {
		if b.bits.Test(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

type BufferReader struct {
	b        *Buffer
	pos, end uint
}

func (r *BufferReader) ReadBool() (bool, error) {
	if r.pos >= r.end {
		return false, io.EOF
	}
	v := r.b.bits.Test(r.pos)
	r.pos++
	return v, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

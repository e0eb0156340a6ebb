// Package bitstream provides bit sinks and sources with an explicit end.
//
// Bits are packed most significant bit first. Streams written to an io.Writer are
// padded with zero bits up to the next byte boundary on Close; the padding is not
// self-describing, so readers must be told the exact number of payload bits.
package bitstream

import (
	"bufio"
	"io"

	"github.com/icza/bitio"
)

// Writer is a bit sink. Close finalizes any partially filled byte.
type Writer interface {
	WriteBool(b bool) error
	Close() error
}

// Reader is a bit source. ReadBool returns io.EOF once, and only once, every bit has been consumed.
type Reader interface {
	ReadBool() (bool, error)
}

// StreamWriter packs bits into an io.Writer.
type StreamWriter struct {
	buf *bufio.Writer
	bw  *bitio.Writer
	n   uint64
}

func NewWriter(w io.Writer) *StreamWriter {
	// bitio must not see w directly: it would close it if it were an io.Closer
	buf := bufio.NewWriter(w)
	return &StreamWriter{buf: buf, bw: bitio.NewWriter(buf)}
}

func (w *StreamWriter) WriteBool(b bool) error {
	if err := w.bw.WriteBool(b); err != nil {
		return err
	}
	w.n++
	return nil
}

// Len returns the number of payload bits written so far, padding excluded
func (w *StreamWriter) Len() uint64 {
	return w.n
}

// Close pads the last byte with zeros and flushes. The underlying writer is left open.
func (w *StreamWriter) Close() error {
	if err := w.bw.Close(); err != nil {
		return err
	}
	return w.buf.Flush()
}

// StreamReader reads exactly nbBits bits from an io.Reader.
type StreamReader struct {
	br        *bitio.Reader
	remaining uint64
}

func NewReader(r io.Reader, nbBits uint64) *StreamReader {
	return &StreamReader{br: bitio.NewReader(r), remaining: nbBits}
}

// ReadBool returns io.EOF after nbBits bits, and io.ErrUnexpectedEOF if the
// underlying reader runs dry before that.
func (r *StreamReader) ReadBool() (bool, error) {
	if r.remaining == 0 {
		return false, io.EOF
	}
	b, err := r.br.ReadBool()
	if err == io.EOF {
		return false, io.ErrUnexpectedEOF
	}
	if err != nil {
		return false, err
	}
	r.remaining--
	return b, nil
}

// Remaining is the number of bits left to read.
func (r *StreamReader) Remaining() uint64 {
	return r.remaining
}

package huffman

import "errors"

var (
	// ErrSourceUnavailable wraps failures reading the symbol or bit source.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrSinkUnavailable wraps failures writing the bit or symbol sink.
	ErrSinkUnavailable = errors.New("sink unavailable")
	// ErrEmptyAlphabet is returned when a tree is requested for an empty frequency mapping.
	ErrEmptyAlphabet = errors.New("empty alphabet")
	// ErrUnknownSymbol is returned when encoding a symbol the code table does not cover.
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrMalformedStream is returned when a bit stream ends in the middle of a code.
	ErrMalformedStream = errors.New("malformed stream")
)

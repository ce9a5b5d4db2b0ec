package httpwire

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

const readChunkSize = 4096

// Framer turns a raw byte stream into delimited or fixed-length chunks.
// Bytes read past the requested boundary are retained and form the
// prefix of the next call, so nothing is ever dropped between requests
// on a persistent connection. A Framer is owned by one connection
// handler and is not safe for concurrent use.
type Framer struct {
	r   io.Reader
	buf []byte
}

func NewFramer(r io.Reader) *Framer {
	return &Framer{r: r}
}

// ReadUntil accumulates from the stream until one of the delimiters
// appears, and returns everything up to and including that delimiter.
// When several delimiters are present the earliest match wins, ties
// broken by argument order. The stream closing first yields
// ErrConnectionClosed.
func (f *Framer) ReadUntil(delims ...[]byte) ([]byte, error) {
	for {
		best, bestDelim := -1, []byte(nil)
		for _, d := range delims {
			if i := bytes.Index(f.buf, d); i >= 0 && (best < 0 || i < best) {
				best, bestDelim = i, d
			}
		}
		if best >= 0 {
			return f.consume(best + len(bestDelim)), nil
		}
		if err := f.fill(); err != nil {
			return nil, err
		}
	}
}

// ReadExactly blocks until exactly n bytes have accumulated, across
// however many underlying reads that takes. The stream closing early
// yields ErrShortRead.
func (f *Framer) ReadExactly(n int) ([]byte, error) {
	for len(f.buf) < n {
		if err := f.fill(); err != nil {
			if errors.Is(err, ErrConnectionClosed) {
				return nil, fmt.Errorf("%w: got %d of %d bytes", ErrShortRead, len(f.buf), n)
			}
			return nil, err
		}
	}
	return f.consume(n), nil
}

// consume returns a copy of the first n buffered bytes and retains the
// rest.
func (f *Framer) consume(n int) []byte {
	out := make([]byte, n)
	copy(out, f.buf[:n])
	f.buf = append(f.buf[:0:0], f.buf[n:]...)
	return out
}

func (f *Framer) fill() error {
	chunk := make([]byte, readChunkSize)
	n, err := f.r.Read(chunk)
	if n > 0 {
		f.buf = append(f.buf, chunk[:n]...)
		return nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return ErrConnectionClosed
	}
	return fmt.Errorf("%w: %v", ErrConnectionClosed, err)
}

// Package wire provides a sequential, checked byte reader over the Native
// format's on-disk byte stream: fixed-width little-endian integers,
// LEB128-style varuints, and length-prefixed UTF-8 strings.
package wire

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/quackscience/duckdb-extension-clickhouse-native/errs"
)

// Reader sequentially consumes bytes from a buffered source, tracking the
// absolute byte offset so callers can report "at offset N" errors.
//
// Reader is not safe for concurrent use; one Reader serves one file handle.
type Reader struct {
	r      *bufio.Reader
	offset int64
}

// NewReader wraps r for sequential checked reads, buffering if r is not
// already a *bufio.Reader.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReaderSize(r, 64*1024)
	}

	return &Reader{r: br}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 { return r.offset }

// AtEOF reports whether the stream has no further bytes, via a zero-cost
// Peek. It is only meaningful at structure boundaries (the start of a
// block): EOF there ends the stream cleanly, EOF mid-structure is
// ErrUnexpectedEOF.
func (r *Reader) AtEOF() bool {
	_, err := r.r.Peek(1)
	return err != nil
}

// ReadExact reads exactly n bytes, returning errs.ErrUnexpectedEOF on short read.
func (r *Reader) ReadExact(n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}

	buf := make([]byte, n)
	if err := r.ReadInto(buf); err != nil {
		return nil, err
	}

	return buf, nil
}

// ReadInto reads exactly len(buf) bytes into buf, returning
// errs.ErrUnexpectedEOF on short read.
func (r *Reader) ReadInto(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}

	n, err := io.ReadFull(r.r, buf)
	r.offset += int64(n)
	if err != nil {
		return fmt.Errorf("wire.Reader.ReadInto: %w", errs.ErrUnexpectedEOF)
	}

	return nil
}

// ReadU8 reads a single unsigned byte.
func (r *Reader) ReadU8() (uint8, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("wire.Reader.ReadU8: %w", errs.ErrUnexpectedEOF)
	}
	r.offset++

	return b, nil
}

// ReadU16 reads an unsigned 16-bit little-endian integer.
func (r *Reader) ReadU16() (uint16, error) {
	var b [2]byte
	if err := r.ReadInto(b[:]); err != nil {
		return 0, err
	}

	return uint16(b[0]) | uint16(b[1])<<8, nil
}

// ReadU32 reads an unsigned 32-bit little-endian integer.
func (r *Reader) ReadU32() (uint32, error) {
	var b [4]byte
	if err := r.ReadInto(b[:]); err != nil {
		return 0, err
	}

	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

// ReadU64 reads an unsigned 64-bit little-endian integer.
func (r *Reader) ReadU64() (uint64, error) {
	var b [8]byte
	if err := r.ReadInto(b[:]); err != nil {
		return 0, err
	}

	var v uint64
	for i := 7; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}

	return v, nil
}

// ReadU128 reads an unsigned 128-bit little-endian integer as two 64-bit
// halves, least-significant first.
func (r *Reader) ReadU128() (lo uint64, hi uint64, err error) {
	lo, err = r.ReadU64()
	if err != nil {
		return 0, 0, err
	}
	hi, err = r.ReadU64()
	if err != nil {
		return 0, 0, err
	}

	return lo, hi, nil
}

// ReadU256 reads an unsigned 256-bit little-endian integer as four 64-bit
// words, least-significant first.
func (r *Reader) ReadU256() ([4]uint64, error) {
	var words [4]uint64
	for i := range words {
		v, err := r.ReadU64()
		if err != nil {
			return words, err
		}
		words[i] = v
	}

	return words, nil
}

// ReadI8 reads a signed 8-bit two's-complement integer.
func (r *Reader) ReadI8() (int8, error) {
	v, err := r.ReadU8()
	return int8(v), err //nolint:gosec
}

// ReadI16 reads a signed 16-bit little-endian two's-complement integer.
func (r *Reader) ReadI16() (int16, error) {
	v, err := r.ReadU16()
	return int16(v), err //nolint:gosec
}

// ReadI32 reads a signed 32-bit little-endian two's-complement integer.
func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	return int32(v), err //nolint:gosec
}

// ReadI64 reads a signed 64-bit little-endian two's-complement integer.
func (r *Reader) ReadI64() (int64, error) {
	v, err := r.ReadU64()
	return int64(v), err //nolint:gosec
}

// ReadF32 reads an IEEE-754 little-endian 32-bit float.
func (r *Reader) ReadF32() (float32, error) {
	v, err := r.ReadU32()
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(v), nil
}

// ReadF64 reads an IEEE-754 little-endian 64-bit float.
func (r *Reader) ReadF64() (float64, error) {
	v, err := r.ReadU64()
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(v), nil
}

// ReadVarUint reads a LEB128-style unsigned varint: 7 payload bits per
// byte, continuation bit in the MSB, little-endian group order.
//
// Encodings longer than canonical are accepted, but decode fails with
// errs.ErrMalformedVarint if the value does not terminate within 10 bytes
// or the decoded value overflows 64 bits.
func (r *Reader) ReadVarUint() (uint64, error) {
	var (
		result uint64
		shift  uint
	)

	for i := 0; i < 10; i++ {
		b, err := r.ReadU8()
		if err != nil {
			return 0, err
		}

		if shift == 63 && b > 1 {
			return 0, fmt.Errorf("wire.Reader.ReadVarUint: %w", errs.ErrMalformedVarint)
		}

		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}

	return 0, fmt.Errorf("wire.Reader.ReadVarUint: %w", errs.ErrMalformedVarint)
}

// ReadLString reads a varuint-prefixed UTF-8 string and validates the
// encoding. Column names and type strings must present as text, so they
// go through here; opaque String column values use ReadLBytes.
func (r *Reader) ReadLString() (string, error) {
	n, err := r.ReadVarUint()
	if err != nil {
		return "", err
	}

	b, err := r.ReadExact(int(n))
	if err != nil {
		return "", err
	}

	if !utf8.Valid(b) {
		return "", fmt.Errorf("wire.Reader.ReadLString: %w", errs.ErrInvalidUTF8)
	}

	return string(b), nil
}

// ReadLBytes reads a varuint-prefixed byte string without validating it as
// UTF-8, for String column values, which pass through as opaque bytes
// until projection requires text.
func (r *Reader) ReadLBytes() ([]byte, error) {
	n, err := r.ReadVarUint()
	if err != nil {
		return nil, err
	}

	return r.ReadExact(int(n))
}

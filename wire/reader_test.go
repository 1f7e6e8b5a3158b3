package wire

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quackscience/duckdb-extension-clickhouse-native/errs"
)

func TestReadFixedWidth(t *testing.T) {
	data := []byte{
		0x2a,                   // u8 = 42
		0x01, 0x02,             // u16 = 0x0201
		0x01, 0x02, 0x03, 0x04, // u32 = 0x04030201
	}
	r := NewReader(bytes.NewReader(data))

	u8, err := r.ReadU8()
	require.NoError(t, err)
	require.Equal(t, uint8(42), u8)

	u16, err := r.ReadU16()
	require.NoError(t, err)
	require.Equal(t, uint16(0x0201), u16)

	u32, err := r.ReadU32()
	require.NoError(t, err)
	require.Equal(t, uint32(0x04030201), u32)

	require.True(t, r.AtEOF())
}

func TestReadVarUintRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 127, 128, 300, 16384, 1 << 32, ^uint64(0)}
	for _, v := range values {
		encoded := encodeVarUint(v)
		r := NewReader(bytes.NewReader(encoded))

		got, err := r.ReadVarUint()
		require.NoError(t, err)
		require.Equal(t, v, got)
		require.True(t, r.AtEOF())
	}
}

func TestReadVarUintAcceptsNonCanonicalEncoding(t *testing.T) {
	// 0 encoded with a redundant continuation byte: 0x80, 0x00
	r := NewReader(bytes.NewReader([]byte{0x80, 0x00}))

	got, err := r.ReadVarUint()
	require.NoError(t, err)
	require.Equal(t, uint64(0), got)
}

func TestReadVarUintMalformed(t *testing.T) {
	// 10 continuation bytes with no terminator.
	data := bytes.Repeat([]byte{0x80}, 10)
	r := NewReader(bytes.NewReader(data))

	_, err := r.ReadVarUint()
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrMalformedVarint))
}

func TestReadLString(t *testing.T) {
	data := append(encodeVarUint(5), []byte("hello")...)
	r := NewReader(bytes.NewReader(data))

	s, err := r.ReadLString()
	require.NoError(t, err)
	require.Equal(t, "hello", s)
}

func TestReadLStringInvalidUTF8(t *testing.T) {
	data := append(encodeVarUint(2), 0xff, 0xfe)
	r := NewReader(bytes.NewReader(data))

	_, err := r.ReadLString()
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrInvalidUTF8))
}

func TestReadExactUnexpectedEOF(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x01, 0x02}))

	_, err := r.ReadExact(5)
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrUnexpectedEOF))
}

func TestOffsetTracksConsumedBytes(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x01, 0x02, 0x03, 0x04}))

	_, err := r.ReadU8()
	require.NoError(t, err)
	require.Equal(t, int64(1), r.Offset())

	_, err = r.ReadU16()
	require.NoError(t, err)
	require.Equal(t, int64(3), r.Offset())
}

// encodeVarUint is a test-only LEB128 encoder, independent of the decoder
// under test, used to build round-trip fixtures.
func encodeVarUint(v uint64) []byte {
	var out []byte
	for v >= 0x80 {
		out = append(out, byte(v)|0x80)
		v >>= 7
	}
	out = append(out, byte(v))

	return out
}

package block

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quackscience/duckdb-extension-clickhouse-native/errs"
	"github.com/quackscience/duckdb-extension-clickhouse-native/types"
)

func putVarUint(buf *bytes.Buffer, v uint64) {
	for v >= 0x80 {
		buf.WriteByte(byte(v) | 0x80)
		v >>= 7
	}
	buf.WriteByte(byte(v))
}

func putLString(buf *bytes.Buffer, s string) {
	putVarUint(buf, uint64(len(s)))
	buf.WriteString(s)
}

func putU32(buf *bytes.Buffer, v uint32) {
	buf.WriteByte(byte(v))
	buf.WriteByte(byte(v >> 8))
	buf.WriteByte(byte(v >> 16))
	buf.WriteByte(byte(v >> 24))
}

// oneBlock writes a single (name=UInt32 "n") block with the given values.
func oneBlock(buf *bytes.Buffer, values []uint32) {
	putVarUint(buf, 1) // n_cols
	putVarUint(buf, uint64(len(values)))
	putLString(buf, "n")
	putLString(buf, "UInt32")
	for _, v := range values {
		putU32(buf, v)
	}
}

func TestBlockReaderSingleColumnMultipleBlocks(t *testing.T) {
	var buf bytes.Buffer
	oneBlock(&buf, []uint32{1, 2, 3})
	oneBlock(&buf, []uint32{4, 5})

	r := NewReader(&buf, types.Options{})

	blk1, err := r.Next()
	require.NoError(t, err)
	require.NotNil(t, blk1)
	require.Equal(t, 3, blk1.NumRows)
	require.Equal(t, []uint32{1, 2, 3}, blk1.Columns[0].UInt32s)

	blk2, err := r.Next()
	require.NoError(t, err)
	require.NotNil(t, blk2)
	require.Equal(t, []uint32{4, 5}, blk2.Columns[0].UInt32s)

	blk3, err := r.Next()
	require.NoError(t, err)
	require.Nil(t, blk3)
}

func TestBlockReaderEmptyFileYieldsNoBlocks(t *testing.T) {
	r := NewReader(&bytes.Buffer{}, types.Options{})

	blk, err := r.Next()
	require.NoError(t, err)
	require.Nil(t, blk)
}

func TestBlockReaderZeroRowNonZeroColumnIsNotEOF(t *testing.T) {
	var buf bytes.Buffer
	putVarUint(&buf, 1) // n_cols
	putVarUint(&buf, 0) // n_rows = 0
	putLString(&buf, "n")
	putLString(&buf, "UInt32")
	// no body bytes, since n_rows = 0
	oneBlock(&buf, []uint32{7})

	r := NewReader(&buf, types.Options{})

	blk1, err := r.Next()
	require.NoError(t, err)
	require.NotNil(t, blk1)
	require.Equal(t, 0, blk1.NumRows)

	blk2, err := r.Next()
	require.NoError(t, err)
	require.NotNil(t, blk2)
	require.Equal(t, []uint32{7}, blk2.Columns[0].UInt32s)
}

func TestBlockReaderSchemaDrift(t *testing.T) {
	var buf bytes.Buffer
	oneBlock(&buf, []uint32{1})

	putVarUint(&buf, 1)
	putVarUint(&buf, 1)
	putLString(&buf, "n")
	putLString(&buf, "UInt64") // different type than block 1
	buf.Write(make([]byte, 8))

	r := NewReader(&buf, types.Options{})

	_, err := r.Next()
	require.NoError(t, err)

	_, err = r.Next()
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrSchemaDrift))
}

func TestBlockReaderTruncationMidBlock(t *testing.T) {
	var buf bytes.Buffer
	oneBlock(&buf, []uint32{1, 2, 3})

	full := buf.Bytes()
	truncated := full[:len(full)-2] // cut into the last value's body

	r := NewReader(bytes.NewReader(truncated), types.Options{})
	_, err := r.Next()
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrUnexpectedEOF))
}

func TestBlockReaderDeadAfterError(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0xff}), types.Options{})

	_, err := r.Next()
	require.Error(t, err)

	_, err = r.Next()
	require.True(t, errors.Is(err, errs.ErrReaderClosed))
}

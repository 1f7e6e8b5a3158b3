package nativefunc

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quackscience/duckdb-extension-clickhouse-native/compress"
	"github.com/quackscience/duckdb-extension-clickhouse-native/errs"
	"github.com/quackscience/duckdb-extension-clickhouse-native/projection"
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

func writeFixtureBlock(buf *bytes.Buffer, values []uint32) {
	putVarUint(buf, 1)
	putVarUint(buf, uint64(len(values)))
	putLString(buf, "n")
	putLString(buf, "UInt32")
	for _, v := range values {
		putU32(buf, v)
	}
}

func writeFixtureFile(t *testing.T, blocks [][]uint32) string {
	t.Helper()

	var buf bytes.Buffer
	for _, b := range blocks {
		writeFixtureBlock(&buf, b)
	}

	path := filepath.Join(t.TempDir(), "fixture.chnative")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	return path
}

func TestBindDerivesSchemaFromFirstBlock(t *testing.T) {
	path := writeFixtureFile(t, [][]uint32{{1, 2, 3}})

	data, err := Bind(path)
	require.NoError(t, err)
	defer data.Close() //nolint:errcheck

	require.Len(t, data.Schema, 1)
	require.Equal(t, "n", data.Schema[0].Name)
	require.Equal(t, projection.HostUInt32, data.Schema[0].Host)
}

func TestBindOnEmptyFileYieldsZeroColumns(t *testing.T) {
	path := writeFixtureFile(t, nil)

	data, err := Bind(path)
	require.NoError(t, err)
	defer data.Close() //nolint:errcheck

	require.Empty(t, data.Schema)
}

func TestScanPullsAllBlocksThenExhausts(t *testing.T) {
	path := writeFixtureFile(t, [][]uint32{{1, 2, 3}, {4, 5}})

	data, err := Bind(path)
	require.NoError(t, err)
	defer data.Close() //nolint:errcheck

	state, err := NewScanState(data)
	require.NoError(t, err)

	var got []uint64
	for {
		chunk := projection.NewSliceChunk(2, data.Schema)
		n, err := state.Scan(chunk)
		require.NoError(t, err)

		if n == 0 {
			break
		}

		got = append(got, chunk.Column(0).Uints[:n]...)
	}

	require.Equal(t, []uint64{1, 2, 3, 4, 5}, got)
}

func TestScanTruncatedSecondBlockEmitsFirstBlockThenFails(t *testing.T) {
	var buf bytes.Buffer
	writeFixtureBlock(&buf, []uint32{1, 2, 3})
	writeFixtureBlock(&buf, []uint32{4, 5})

	full := buf.Bytes()
	truncated := full[:len(full)-4] // cut into the second block's body

	path := filepath.Join(t.TempDir(), "truncated.chnative")
	require.NoError(t, os.WriteFile(path, truncated, 0o600))

	data, err := Bind(path)
	require.NoError(t, err)
	defer data.Close() //nolint:errcheck

	state, err := NewScanState(data)
	require.NoError(t, err)

	chunk := projection.NewSliceChunk(10, data.Schema)
	n, err := state.Scan(chunk)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, []uint64{1, 2, 3}, chunk.Column(0).Uints[:3])

	chunk = projection.NewSliceChunk(10, data.Schema)
	_, err = state.Scan(chunk)
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrUnexpectedEOF))
}

func TestBindCompressedBlocks(t *testing.T) {
	var raw bytes.Buffer
	writeFixtureBlock(&raw, []uint32{7, 8, 9})

	frame, err := compress.CompressFrame(compress.LZ4Codec{}, raw.Bytes())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "fixture.chnative.lz4")
	require.NoError(t, os.WriteFile(path, frame, 0o600))

	data, err := Bind(path, WithCompressedBlocks(true))
	require.NoError(t, err)
	defer data.Close() //nolint:errcheck

	state, err := NewScanState(data)
	require.NoError(t, err)

	chunk := projection.NewSliceChunk(10, data.Schema)
	n, err := state.Scan(chunk)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, []uint64{7, 8, 9}, chunk.Column(0).Uints[:3])
}

func TestBindFallbackToStringDecodesUnknownTypeAsString(t *testing.T) {
	var buf bytes.Buffer
	putVarUint(&buf, 1)
	putVarUint(&buf, 2)
	putLString(&buf, "pt")
	putLString(&buf, "Point")
	// Body decoded as String once the type falls back.
	putLString(&buf, "a")
	putLString(&buf, "bc")

	path := filepath.Join(t.TempDir(), "fallback.chnative")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	_, err := Bind(path)
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrUnsupportedType))

	data, err := Bind(path, WithFallbackToString(true))
	require.NoError(t, err)
	defer data.Close() //nolint:errcheck

	require.Equal(t, projection.HostVarchar, data.Schema[0].Host)
}

func TestScanOnEmptyFileReturnsZeroRowsImmediately(t *testing.T) {
	path := writeFixtureFile(t, nil)

	data, err := Bind(path)
	require.NoError(t, err)
	defer data.Close() //nolint:errcheck

	state, err := NewScanState(data)
	require.NoError(t, err)

	chunk := projection.NewSliceChunk(10, data.Schema)
	n, err := state.Scan(chunk)
	require.NoError(t, err)
	require.Equal(t, 0, n)
}

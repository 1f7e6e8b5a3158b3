package compress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("clickhouse native block payload "), 200)

	codecs := []Codec{NoopCodec{}, LZ4Codec{}, ZstdCodec{}}

	for _, codec := range codecs {
		t.Run(codec.Method().String(), func(t *testing.T) {
			compressed, err := codec.Compress(data)
			require.NoError(t, err)

			out, err := codec.Decompress(compressed, len(data))
			require.NoError(t, err)
			assert.Equal(t, data, out)
		})
	}
}

func TestGetCodecUnknownMethod(t *testing.T) {
	_, err := GetCodec(Method(0x7f))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unsupported compression method"))
}

func TestMethodString(t *testing.T) {
	assert.Equal(t, "None", MethodNone.String())
	assert.Equal(t, "LZ4", MethodLZ4.String())
	assert.Equal(t, "ZSTD", MethodZSTD.String())
	assert.Equal(t, "Unknown", Method(0x01).String())
}

func TestCompressFrameAndDecompressingReaderRoundTrip(t *testing.T) {
	block1 := bytes.Repeat([]byte("abc"), 50)
	block2 := []byte("tiny second block")

	frame1, err := CompressFrame(LZ4Codec{}, block1)
	require.NoError(t, err)
	frame2, err := CompressFrame(ZstdCodec{}, block2)
	require.NoError(t, err)

	var stream bytes.Buffer
	stream.Write(frame1)
	stream.Write(frame2)

	r := NewDecompressingReader(&stream)

	got := make([]byte, len(block1))
	n, err := r.Read(got)
	require.NoError(t, err)
	assert.Equal(t, len(block1), n)
	assert.Equal(t, block1, got)

	got2 := make([]byte, len(block2))
	n, err = r.Read(got2)
	require.NoError(t, err)
	assert.Equal(t, len(block2), n)
	assert.Equal(t, block2, got2)
}

func TestDecompressingReaderDetectsChecksumCorruption(t *testing.T) {
	frame, err := CompressFrame(NoopCodec{}, []byte("hello world"))
	require.NoError(t, err)

	frame[0] ^= 0xff // flip a byte inside the checksum

	r := NewDecompressingReader(bytes.NewReader(frame))
	_, err = r.Read(make([]byte, 11))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")
}

func TestDecompressingReaderTruncatedHeader(t *testing.T) {
	r := NewDecompressingReader(bytes.NewReader([]byte{1, 2, 3}))
	_, err := r.Read(make([]byte, 4))
	require.Error(t, err)
}

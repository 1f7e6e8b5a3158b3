package compress

import (
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool pools lz4.Compressor instances; the type carries
// internal match-finding state that benefits from reuse across calls.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Codec implements Codec for the Native wire format's LZ4 block method.
type LZ4Codec struct{}

var _ Codec = LZ4Codec{}

func (LZ4Codec) Method() Method { return MethodLZ4 }

// Compress compresses data using a single LZ4 block (no frame header),
// matching how ClickHouse's block compression writes LZ4 payloads.
func (LZ4Codec) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	c, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(c)

	n, err := c.CompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("compress.LZ4Codec.Compress: %w", err)
	}

	return dst[:n], nil
}

// Decompress decompresses data into a buffer of exactly uncompressedSize
// bytes. The Native block frame always carries the uncompressed size
// explicitly, so there is never a need to guess the output size the way a
// general LZ4 stream would.
func (LZ4Codec) Decompress(data []byte, uncompressedSize int) ([]byte, error) {
	if uncompressedSize == 0 {
		return nil, nil
	}

	dst := make([]byte, uncompressedSize)
	n, err := lz4.UncompressBlock(data, dst)
	if err != nil {
		return nil, fmt.Errorf("compress.LZ4Codec.Decompress: %w", err)
	}

	return dst[:n], nil
}

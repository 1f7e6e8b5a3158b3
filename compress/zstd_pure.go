//go:build !nobuild

package compress

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdDecoderPool pools zstd decoders for the pure-Go build. klauspost's
// decoder is explicitly designed for reuse after a warmup, so pooling
// avoids paying that warmup cost per block.
var zstdDecoderPool = sync.Pool{
	New: func() any {
		dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		if err != nil {
			panic(fmt.Sprintf("compress: failed to create zstd decoder: %v", err))
		}

		return dec
	},
}

var zstdEncoderPool = sync.Pool{
	New: func() any {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			panic(fmt.Sprintf("compress: failed to create zstd encoder: %v", err))
		}

		return enc
	},
}

func (ZstdCodec) Compress(data []byte) ([]byte, error) {
	enc := zstdEncoderPool.Get().(*zstd.Encoder) //nolint:forcetypeassert
	defer zstdEncoderPool.Put(enc)

	return enc.EncodeAll(data, nil), nil
}

func (ZstdCodec) Decompress(data []byte, uncompressedSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dec := zstdDecoderPool.Get().(*zstd.Decoder) //nolint:forcetypeassert
	defer zstdDecoderPool.Put(dec)

	out, err := dec.DecodeAll(data, make([]byte, 0, uncompressedSize))
	if err != nil {
		return nil, fmt.Errorf("compress.ZstdCodec.Decompress: %w", err)
	}

	return out, nil
}

// Package compress decodes the optional block-level compression framing of
// Native files: the core block reader assumes uncompressed input, but a
// compressed file frames each block with a checksum, a one-byte method
// code, and compressed / uncompressed sizes. This package decodes that
// framing and dispatches to a Codec per method, without changing anything
// else in the read path.
package compress

import "fmt"

// Method identifies a block compression method. The Native wire protocol
// enumerates exactly these three; there is no fourth slot in the frame
// for a method this package doesn't know about.
type Method uint8

const (
	MethodNone Method = 0x02
	MethodLZ4  Method = 0x82
	MethodZSTD Method = 0x90
)

func (m Method) String() string {
	switch m {
	case MethodNone:
		return "None"
	case MethodLZ4:
		return "LZ4"
	case MethodZSTD:
		return "ZSTD"
	default:
		return "Unknown"
	}
}

// Codec compresses and decompresses whole block payloads.
type Codec interface {
	Method() Method
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte, uncompressedSize int) ([]byte, error)
}

var builtinCodecs = map[Method]Codec{
	MethodNone: NoopCodec{},
	MethodLZ4:  LZ4Codec{},
	MethodZSTD: ZstdCodec{},
}

// GetCodec retrieves the built-in Codec for the given method.
func GetCodec(method Method) (Codec, error) {
	if codec, ok := builtinCodecs[method]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("compress.GetCodec: unsupported compression method: %s", method)
}

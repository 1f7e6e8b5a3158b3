package compress

import (
	"bufio"
	"fmt"
	"io"

	"github.com/quackscience/duckdb-extension-clickhouse-native/internal/pool"
)

// frameHeaderSize is the fixed portion of a compressed block frame:
// method(1) + compressed_size(4) + uncompressed_size(4), not counting the
// leading checksum.
const frameHeaderSize = 1 + 4 + 4

// DecompressingReader wraps a Native file that carries the compressed-block
// framing (checksum, method, compressed_size, uncompressed_size, data)
// ahead of every block, and exposes a plain io.Reader of the decompressed
// block stream that block.Reader can consume exactly as if the file were
// never compressed.
type DecompressingReader struct {
	src *bufio.Reader
	buf []byte // current decompressed frame, pending bytes at [pos:]
	pos int
}

// NewDecompressingReader wraps r, a Native file stream whose blocks are
// each prefixed with a compression frame.
func NewDecompressingReader(r io.Reader) *DecompressingReader {
	return &DecompressingReader{src: bufio.NewReader(r)}
}

func (d *DecompressingReader) Read(p []byte) (int, error) {
	if d.pos >= len(d.buf) {
		if err := d.fill(); err != nil {
			return 0, err
		}
	}

	n := copy(p, d.buf[d.pos:])
	d.pos += n

	return n, nil
}

func (d *DecompressingReader) fill() error {
	header := make([]byte, checksumSize+frameHeaderSize)
	if _, err := io.ReadFull(d.src, header); err != nil {
		if err == io.ErrUnexpectedEOF {
			return fmt.Errorf("compress: truncated frame header: %w", err)
		}

		return err // clean io.EOF propagates as end of stream
	}

	var want [checksumSize]byte
	copy(want[:], header[:checksumSize])

	method := Method(header[checksumSize])
	compressedSize := getU32LE(header[checksumSize+1:])
	uncompressedSize := getU32LE(header[checksumSize+5:])

	// compressed_size in the wire frame counts method+sizes+data.
	payloadLen := int(compressedSize) - frameHeaderSize
	if payloadLen < 0 {
		return fmt.Errorf("compress: frame compressed_size %d shorter than header", compressedSize)
	}

	// The compressed payload is scratch: it never outlives this call, so a
	// pooled buffer avoids a per-frame allocation.
	bb := pool.GetColumnBuffer()
	defer pool.PutColumnBuffer(bb)
	bb.Grow(payloadLen)
	payload := bb.Bytes()[:payloadLen]

	if _, err := io.ReadFull(d.src, payload); err != nil {
		return fmt.Errorf("compress: truncated frame payload: %w", err)
	}

	got := checksum(header[checksumSize:], payload)
	if got != want {
		return fmt.Errorf("compress: frame checksum mismatch")
	}

	codec, err := GetCodec(method)
	if err != nil {
		return err
	}

	out, err := codec.Decompress(payload, int(uncompressedSize))
	if err != nil {
		return fmt.Errorf("compress: decompress frame: %w", err)
	}

	if method == MethodNone {
		// NoopCodec returns its input, which aliases the pooled scratch.
		out = append(make([]byte, 0, len(out)), out...)
	}

	d.buf = out
	d.pos = 0

	return nil
}

// CompressFrame encodes data as a single compression frame using codec,
// for producing fixtures and for round-trip testing of DecompressingReader.
func CompressFrame(codec Codec, data []byte) ([]byte, error) {
	compressed, err := codec.Compress(data)
	if err != nil {
		return nil, fmt.Errorf("compress.CompressFrame: %w", err)
	}

	header := make([]byte, frameHeaderSize)
	header[0] = byte(codec.Method())
	putU32LE(header[1:], uint32(frameHeaderSize+len(compressed))) //nolint:gosec
	putU32LE(header[5:], uint32(len(data)))                       //nolint:gosec

	sum := checksum(header, compressed)

	out := make([]byte, 0, checksumSize+len(header)+len(compressed))
	out = append(out, sum[:]...)
	out = append(out, header...)
	out = append(out, compressed...)

	return out, nil
}

func putU32LE(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func getU32LE(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

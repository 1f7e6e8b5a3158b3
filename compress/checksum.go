package compress

import "github.com/cespare/xxhash/v2"

// checksumSize is the width of the frame checksum field in bytes.
const checksumSize = 16

// checksum computes a 16-byte integrity value over method+sizes+compressed
// data. ClickHouse's own compressed block framing uses CityHash128, which
// has no maintained pure-Go implementation in reach here; xxHash64 run
// twice with different seeds gives the frame a fixed-width checksum with
// the same role (corruption detection, not cryptographic integrity).
// Frames written by ClickHouse itself therefore do not pass this check.
func checksum(header []byte, data []byte) [checksumSize]byte {
	var out [checksumSize]byte

	d := xxhash.New()
	d.Write(header) //nolint:errcheck
	d.Write(data)    //nolint:errcheck
	lo := d.Sum64()

	// Second half folds the first hash back in as a running prefix, so a
	// change anywhere in the frame still perturbs both halves.
	d.Write([]byte{
		byte(lo), byte(lo >> 8), byte(lo >> 16), byte(lo >> 24),
		byte(lo >> 32), byte(lo >> 40), byte(lo >> 48), byte(lo >> 56),
	}) //nolint:errcheck
	hi := d.Sum64()

	putU64LE(out[0:8], lo)
	putU64LE(out[8:16], hi)

	return out
}

func putU64LE(b []byte, v uint64) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
	b[4] = byte(v >> 32)
	b[5] = byte(v >> 40)
	b[6] = byte(v >> 48)
	b[7] = byte(v >> 56)
}

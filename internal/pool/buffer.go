// Package pool provides pooled byte buffers for decode-time scratch space.
// Within this module the compress package uses the column-sized pool for
// compressed frame payloads; decoded column vectors are not pooled.
package pool

import "sync"

// Buffer size tiers for the decoder's column-body and output-chunk scratch.
const (
	ColumnBufferDefaultSize  = 1024 * 16   // 16KiB, typical single column body scratch
	ColumnBufferMaxThreshold = 1024 * 256  // 256KiB
	ChunkBufferDefaultSize   = 1024 * 64   // 64KiB, typical host output chunk
	ChunkBufferMaxThreshold  = 1024 * 1024 // 1MiB
)

// ByteBuffer is a growable byte slice with an amortized growth strategy,
// intended for reuse via a Pool rather than per-call allocation.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a ByteBuffer with the given starting capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte { return bb.B }

// Reset empties the buffer while retaining its backing array.
func (bb *ByteBuffer) Reset() { bb.B = bb.B[:0] }

// Len returns the number of bytes currently held.
func (bb *ByteBuffer) Len() int { return len(bb.B) }

// Cap returns the buffer's backing capacity.
func (bb *ByteBuffer) Cap() int { return cap(bb.B) }

// MustWrite appends data, growing the backing array if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.B = append(bb.B, data...)
}

// Grow ensures the buffer can accept requiredBytes more bytes without a
// further reallocation.
//
// Growth strategy: small buffers grow by a fixed default size to minimize
// reallocation count; larger buffers grow by 25% of current capacity to
// balance memory usage against reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := ColumnBufferDefaultSize
	if cap(bb.B) > 4*ColumnBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}
	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Pool is a sync.Pool of ByteBuffer with a maximum retained size, so
// pathologically large buffers from one decode don't bloat steady-state
// memory for the rest.
type Pool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewPool creates a Pool whose New buffers start at defaultSize and which
// discards (rather than retains) buffers larger than maxThreshold on Put.
func NewPool(defaultSize, maxThreshold int) *Pool {
	return &Pool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool, allocating one if empty.
func (p *Pool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse, discarding it instead if
// its capacity exceeds the pool's maxThreshold.
func (p *Pool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}
	if p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold {
		return
	}
	bb.Reset()
	p.pool.Put(bb)
}

var (
	columnPool = NewPool(ColumnBufferDefaultSize, ColumnBufferMaxThreshold)
	chunkPool  = NewPool(ChunkBufferDefaultSize, ChunkBufferMaxThreshold)
)

// GetColumnBuffer retrieves a scratch buffer sized for a single column body.
func GetColumnBuffer() *ByteBuffer { return columnPool.Get() }

// PutColumnBuffer returns a column scratch buffer to its pool.
func PutColumnBuffer(bb *ByteBuffer) { columnPool.Put(bb) }

// GetChunkBuffer retrieves a scratch buffer sized for a host output chunk.
func GetChunkBuffer() *ByteBuffer { return chunkPool.Get() }

// PutChunkBuffer returns a chunk scratch buffer to its pool.
func PutChunkBuffer(bb *ByteBuffer) { chunkPool.Put(bb) }

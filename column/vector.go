// Package column decodes a column body — the byte range following a
// (name, type) header in a Native block — into a typed in-memory Vector,
// dispatching on the parsed types.Type AST.
package column

import "github.com/quackscience/duckdb-extension-clickhouse-native/types"

// Bitmap is a packed per-row bitmap. Nullable's wire form is one byte per
// row; the decoder repacks it into this bitmap, one bit per row.
type Bitmap struct {
	bits []byte
	n    int
}

// NewBitmap allocates a Bitmap for n rows, all bits initially clear.
func NewBitmap(n int) Bitmap {
	return Bitmap{bits: make([]byte, (n+7)/8), n: n}
}

// Set marks row i.
func (b *Bitmap) Set(i int) {
	b.bits[i/8] |= 1 << uint(i%8)
}

// Get reports whether row i is set.
func (b Bitmap) Get(i int) bool {
	if i < 0 || i >= b.n {
		return false
	}

	return b.bits[i/8]&(1<<uint(i%8)) != 0
}

// Len returns the number of rows the bitmap covers.
func (b Bitmap) Len() int { return b.n }

// Vector is the decoded, homogeneous in-memory representation of one
// column's body for a given block. Exactly one of the typed slices below
// is populated, selected by Type.Kind (and, for primitives, Type.Primitive).
//
// Vector is one struct with explicit fields rather than an
// interface-per-type hierarchy: the decoder already knows the concrete
// shape from the Type AST, so there is no need for dynamic dispatch once a
// Vector is built. Only Projection reads it.
type Vector struct {
	Type *types.Type
	Name string
	Rows int

	// Fixed-width numeric storage, one of which is populated for
	// KindPrimitive (and reused by KindDateTime/KindDateTime64/KindDecimal,
	// whose physical layout is the underlying integer).
	Int8s    []int8
	Int16s   []int16
	Int32s   []int32
	Int64s   []int64
	Int128s  [][2]uint64 // low, high
	Int256s  [][4]uint64
	UInt8s   []uint8
	UInt16s  []uint16
	UInt32s  []uint32
	UInt64s  []uint64
	UInt128s [][2]uint64
	UInt256s [][4]uint64
	Float32s []float32
	Float64s []float64

	// Bool is stored as UInt8s (0/1); Date as UInt16s; Date32 as Int32s;
	// DateTime as UInt32s; DateTime64 as Int64s; UUID as UInt128s;
	// IPv4 as UInt32s; IPv6 as a 16-byte array slice below.
	IPv6s [][16]byte

	// String / FixedString storage: an offset buffer into a shared byte
	// arena (String), or a flat fixed-stride arena (FixedString).
	StringOffsets []uint32 // len Rows+1, cumulative
	StringData    []byte
	FixedWidth    int
	FixedData     []byte // len Rows*FixedWidth

	// Nullable: Nulls marks which rows are null; Inner holds the
	// fully-decoded values for every row, including the placeholder values
	// ClickHouse writes for null slots. Placeholders are decoded to keep
	// the stream aligned but must never be surfaced.
	Nulls Bitmap
	Inner *Vector

	// LowCardinality: Dictionary holds the decoded inner-type values,
	// Indices the per-row dictionary index (materialization happens at
	// projection time via output[i] = Dictionary[Indices[i]]). When the
	// inner type is Nullable, the dictionary holds base-type values and
	// index 0 stands for null.
	Dictionary *Vector
	Indices    []uint64

	// Array: Offsets[i] is the cumulative end position of row i's
	// elements (Offsets[-1] implicitly 0); Elements holds the flattened
	// inner-type values.
	Offsets  []uint64
	Elements *Vector
}

package projection

// sliceChunk is a plain-Go-slice backed Chunk, used by this module's own
// tests and as a reference implementation for a host binding to follow.
type sliceChunk struct {
	capacity int
	length   int
	columns  []*sliceVector
}

// NewSliceChunk builds a Chunk of the given capacity from column
// descriptors, backed by plain Go slices rather than a host runtime's
// native vector memory.
func NewSliceChunk(capacity int, cols []Column) *sliceChunk {
	c := &sliceChunk{capacity: capacity, columns: make([]*sliceVector, len(cols))}
	for i, col := range cols {
		c.columns[i] = newSliceVector(capacity, col)
	}

	return c
}

func (c *sliceChunk) Capacity() int      { return c.capacity }
func (c *sliceChunk) SetLen(n int)       { c.length = n }
func (c *sliceChunk) Len() int           { return c.length }
func (c *sliceChunk) Vector(i int) VectorSink { return c.columns[i] }
func (c *sliceChunk) Column(i int) *sliceVector { return c.columns[i] }

// sliceVector is a generic tagged-slice VectorSink sufficient to observe
// what Projection wrote, for tests and for small embedded uses that don't
// need a real host runtime.
type sliceVector struct {
	col     Column
	Nulls   []bool
	Ints    []int64
	Uints   []uint64
	Floats  []float64
	Strings []string
	Bools   []bool
	HugeLo  []uint64
	HugeHi  []uint64

	child        *sliceVector
	listOffsets  []int
	listLengths  []int
}

func newSliceVector(capacity int, col Column) *sliceVector {
	v := &sliceVector{col: col}
	if col.Nullable {
		v.Nulls = make([]bool, capacity)
	}

	switch col.Host {
	case HostList:
		v.listOffsets = make([]int, capacity)
		v.listLengths = make([]int, capacity)
		if col.Element != nil {
			v.child = newSliceVector(capacity*4, *col.Element)
		}
	default:
		v.Ints = make([]int64, capacity)
		v.Uints = make([]uint64, capacity)
		v.Floats = make([]float64, capacity)
		v.Strings = make([]string, capacity)
		v.Bools = make([]bool, capacity)
		v.HugeLo = make([]uint64, capacity)
		v.HugeHi = make([]uint64, capacity)
	}

	return v
}

func (v *sliceVector) SetNull(row int) {
	if v.Nulls != nil {
		v.Nulls[row] = true
	}
}

func (v *sliceVector) WriteInt64(row int, x int64)     { v.Ints[row] = x }
func (v *sliceVector) WriteUint64(row int, x uint64)    { v.Uints[row] = x }
func (v *sliceVector) WriteFloat64(row int, x float64)  { v.Floats[row] = x }
func (v *sliceVector) WriteString(row int, x string)    { v.Strings[row] = x }
func (v *sliceVector) WriteBool(row int, x bool)        { v.Bools[row] = x }
func (v *sliceVector) WriteHugeInt(row int, lo, hi uint64) {
	v.HugeLo[row] = lo
	v.HugeHi[row] = hi
}

func (v *sliceVector) ListChild() VectorSink { return v.child }

func (v *sliceVector) AppendListEntry(row int, childOffset, length int) {
	v.listOffsets[row] = childOffset
	v.listLengths[row] = length
}

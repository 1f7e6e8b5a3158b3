package column

import (
	"fmt"

	"github.com/quackscience/duckdb-extension-clickhouse-native/errs"
	"github.com/quackscience/duckdb-extension-clickhouse-native/types"
	"github.com/quackscience/duckdb-extension-clickhouse-native/wire"
)

// decodeArray reads rows cumulative u64 offsets, then decodes the
// flattened total-element inner column. Offsets must be non-decreasing;
// the last offset bounds the flat-values length.
func (d *Decoder) decodeArray(r *wire.Reader, t *types.Type, rows int) (*Vector, error) {
	offsets := make([]uint64, rows)
	var prev uint64
	for i := 0; i < rows; i++ {
		off, err := r.ReadU64()
		if err != nil {
			return nil, err
		}
		if off < prev {
			return nil, fmt.Errorf("column.decodeArray: %w", errs.ErrNonMonotonicOffsets)
		}
		offsets[i] = off
		prev = off
	}

	var total uint64
	if rows > 0 {
		total = offsets[rows-1]
	}
	if total > uint64(^uint(0)>>1) {
		return nil, fmt.Errorf("column.decodeArray: %w: total element count %d", errs.ErrNumericOverflow, total)
	}

	elements, err := d.decode(r, t.Inner, int(total))
	if err != nil {
		return nil, err
	}

	return &Vector{Rows: rows, Offsets: offsets, Elements: elements}, nil
}

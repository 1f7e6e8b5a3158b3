package column

import (
	"github.com/quackscience/duckdb-extension-clickhouse-native/types"
	"github.com/quackscience/duckdb-extension-clickhouse-native/wire"
)

// decodeNullable reads the per-row null byte stream (1 = null) followed by
// the inner column decoded as if non-nullable for all rows. The inner
// decode includes ClickHouse's written placeholder values for null slots;
// Vector.Nulls is the only thing callers should consult before trusting
// Vector.Inner's contents for a given row.
func (d *Decoder) decodeNullable(r *wire.Reader, t *types.Type, rows int) (*Vector, error) {
	nulls := NewBitmap(rows)
	for i := 0; i < rows; i++ {
		b, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		if b != 0 {
			nulls.Set(i)
		}
	}

	inner, err := d.decode(r, t.Inner, rows)
	if err != nil {
		return nil, err
	}

	return &Vector{Rows: rows, Nulls: nulls, Inner: inner}, nil
}

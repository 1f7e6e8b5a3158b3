package column

import (
	"github.com/quackscience/duckdb-extension-clickhouse-native/types"
	"github.com/quackscience/duckdb-extension-clickhouse-native/wire"
)

// decodeFixedString reads rows*n bytes verbatim. Zero-padding within each
// fixed-width slot is preserved; trailing-NUL trimming is a projection
// concern, not a decode-time one.
func (d *Decoder) decodeFixedString(r *wire.Reader, t *types.Type, rows int) (*Vector, error) {
	n := int(t.FixedLen)
	data, err := r.ReadExact(rows * n)
	if err != nil {
		return nil, err
	}

	return &Vector{Rows: rows, FixedWidth: n, FixedData: data}, nil
}

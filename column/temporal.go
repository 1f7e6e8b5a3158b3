package column

import (
	"github.com/quackscience/duckdb-extension-clickhouse-native/types"
	"github.com/quackscience/duckdb-extension-clickhouse-native/wire"
)

// decodeDateTime reads the underlying UInt32 seconds-since-epoch; the
// timezone literal in t.TZ is attached as metadata and applied by
// Projection without conversion.
func (d *Decoder) decodeDateTime(r *wire.Reader, _ *types.Type, rows int) (*Vector, error) {
	v := &Vector{Rows: rows, UInt32s: make([]uint32, rows)}
	for i := range v.UInt32s {
		x, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		v.UInt32s[i] = x
	}

	return v, nil
}

// decodeDateTime64 reads the underlying Int64 tick count at the
// declared precision; precision/timezone are metadata, applied at
// projection time.
func (d *Decoder) decodeDateTime64(r *wire.Reader, _ *types.Type, rows int) (*Vector, error) {
	v := &Vector{Rows: rows, Int64s: make([]int64, rows)}
	for i := range v.Int64s {
		x, err := r.ReadI64()
		if err != nil {
			return nil, err
		}
		v.Int64s[i] = x
	}

	return v, nil
}

// decodeDecimal reads the underlying signed integer whose width is
// determined by t.Precision (9/18/38/76 -> 32/64/128/256 bits, matching
// ClickHouse's DecimalN family); scale is metadata applied at projection.
func (d *Decoder) decodeDecimal(r *wire.Reader, t *types.Type, rows int) (*Vector, error) {
	switch {
	case t.Precision <= 9:
		v := &Vector{Rows: rows, Int32s: make([]int32, rows)}
		for i := range v.Int32s {
			x, err := r.ReadI32()
			if err != nil {
				return nil, err
			}
			v.Int32s[i] = x
		}

		return v, nil
	case t.Precision <= 18:
		v := &Vector{Rows: rows, Int64s: make([]int64, rows)}
		for i := range v.Int64s {
			x, err := r.ReadI64()
			if err != nil {
				return nil, err
			}
			v.Int64s[i] = x
		}

		return v, nil
	case t.Precision <= 38:
		v := &Vector{Rows: rows, Int128s: make([][2]uint64, rows)}
		for i := range v.Int128s {
			lo, hi, err := r.ReadU128()
			if err != nil {
				return nil, err
			}
			v.Int128s[i] = [2]uint64{lo, hi}
		}

		return v, nil
	default:
		v := &Vector{Rows: rows, Int256s: make([][4]uint64, rows)}
		for i := range v.Int256s {
			w, err := r.ReadU256()
			if err != nil {
				return nil, err
			}
			v.Int256s[i] = w
		}

		return v, nil
	}
}

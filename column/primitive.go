package column

import (
	"fmt"

	"github.com/quackscience/duckdb-extension-clickhouse-native/types"
	"github.com/quackscience/duckdb-extension-clickhouse-native/wire"
)

// decodePrimitive reads rows fixed-width values verbatim. IPv4 is read as
// a raw 4-byte little-endian unsigned integer; producer versions disagree
// on IPv4 octet order, so that is resolved at projection time via a
// pluggable endian engine, not here.
func (d *Decoder) decodePrimitive(r *wire.Reader, t *types.Type, rows int) (*Vector, error) {
	v := &Vector{Rows: rows}

	switch t.Primitive {
	case types.Int8:
		v.Int8s = make([]int8, rows)
		for i := range v.Int8s {
			x, err := r.ReadI8()
			if err != nil {
				return nil, err
			}
			v.Int8s[i] = x
		}
	case types.Int16:
		v.Int16s = make([]int16, rows)
		for i := range v.Int16s {
			x, err := r.ReadI16()
			if err != nil {
				return nil, err
			}
			v.Int16s[i] = x
		}
	case types.Int32:
		v.Int32s = make([]int32, rows)
		for i := range v.Int32s {
			x, err := r.ReadI32()
			if err != nil {
				return nil, err
			}
			v.Int32s[i] = x
		}
	case types.Int64:
		v.Int64s = make([]int64, rows)
		for i := range v.Int64s {
			x, err := r.ReadI64()
			if err != nil {
				return nil, err
			}
			v.Int64s[i] = x
		}
	case types.Int128:
		v.Int128s = make([][2]uint64, rows)
		for i := range v.Int128s {
			lo, hi, err := r.ReadU128()
			if err != nil {
				return nil, err
			}
			v.Int128s[i] = [2]uint64{lo, hi}
		}
	case types.Int256:
		v.Int256s = make([][4]uint64, rows)
		for i := range v.Int256s {
			w, err := r.ReadU256()
			if err != nil {
				return nil, err
			}
			v.Int256s[i] = w
		}
	case types.UInt8:
		v.UInt8s = make([]uint8, rows)
		for i := range v.UInt8s {
			x, err := r.ReadU8()
			if err != nil {
				return nil, err
			}
			v.UInt8s[i] = x
		}
	case types.UInt16:
		v.UInt16s = make([]uint16, rows)
		for i := range v.UInt16s {
			x, err := r.ReadU16()
			if err != nil {
				return nil, err
			}
			v.UInt16s[i] = x
		}
	case types.UInt32:
		v.UInt32s = make([]uint32, rows)
		for i := range v.UInt32s {
			x, err := r.ReadU32()
			if err != nil {
				return nil, err
			}
			v.UInt32s[i] = x
		}
	case types.UInt64:
		v.UInt64s = make([]uint64, rows)
		for i := range v.UInt64s {
			x, err := r.ReadU64()
			if err != nil {
				return nil, err
			}
			v.UInt64s[i] = x
		}
	case types.UInt128, types.UUID:
		v.UInt128s = make([][2]uint64, rows)
		for i := range v.UInt128s {
			lo, hi, err := r.ReadU128()
			if err != nil {
				return nil, err
			}
			v.UInt128s[i] = [2]uint64{lo, hi}
		}
	case types.UInt256:
		v.UInt256s = make([][4]uint64, rows)
		for i := range v.UInt256s {
			w, err := r.ReadU256()
			if err != nil {
				return nil, err
			}
			v.UInt256s[i] = w
		}
	case types.Float32:
		v.Float32s = make([]float32, rows)
		for i := range v.Float32s {
			x, err := r.ReadF32()
			if err != nil {
				return nil, err
			}
			v.Float32s[i] = x
		}
	case types.Float64:
		v.Float64s = make([]float64, rows)
		for i := range v.Float64s {
			x, err := r.ReadF64()
			if err != nil {
				return nil, err
			}
			v.Float64s[i] = x
		}
	case types.String:
		return d.decodeString(r, rows)
	case types.Bool:
		v.UInt8s = make([]uint8, rows)
		for i := range v.UInt8s {
			x, err := r.ReadU8()
			if err != nil {
				return nil, err
			}
			v.UInt8s[i] = x
		}
	case types.Date:
		v.UInt16s = make([]uint16, rows)
		for i := range v.UInt16s {
			x, err := r.ReadU16()
			if err != nil {
				return nil, err
			}
			v.UInt16s[i] = x
		}
	case types.Date32:
		v.Int32s = make([]int32, rows)
		for i := range v.Int32s {
			x, err := r.ReadI32()
			if err != nil {
				return nil, err
			}
			v.Int32s[i] = x
		}
	case types.IPv4:
		v.UInt32s = make([]uint32, rows)
		for i := range v.UInt32s {
			x, err := r.ReadU32()
			if err != nil {
				return nil, err
			}
			v.UInt32s[i] = x
		}
	case types.IPv6:
		v.IPv6s = make([][16]byte, rows)
		for i := range v.IPv6s {
			lo, hi, err := r.ReadU128()
			if err != nil {
				return nil, err
			}
			putU128BE(&v.IPv6s[i], lo, hi)
		}
	default:
		return nil, fmt.Errorf("column.decodePrimitive: unhandled primitive %s", t.Primitive)
	}

	return v, nil
}

// putU128BE writes a 128-bit value read as two little-endian 64-bit halves
// back out least-significant byte first, lo then hi, which restores the 16
// bytes in their original wire order: IPv6 addresses are displayed
// byte-for-byte from the wire.
func putU128BE(dst *[16]byte, lo, hi uint64) {
	for i := 0; i < 8; i++ {
		dst[i] = byte(lo >> (8 * i))
	}
	for i := 0; i < 8; i++ {
		dst[8+i] = byte(hi >> (8 * i))
	}
}

// decodeString reads rows (len: varuint, bytes[len]) values into an
// offset buffer over a shared byte arena.
func (d *Decoder) decodeString(r *wire.Reader, rows int) (*Vector, error) {
	v := &Vector{Rows: rows}
	v.StringOffsets = make([]uint32, rows+1)

	var arena []byte
	for i := 0; i < rows; i++ {
		b, err := r.ReadLBytes()
		if err != nil {
			return nil, err
		}
		arena = append(arena, b...)
		v.StringOffsets[i+1] = uint32(len(arena)) //nolint:gosec
	}
	v.StringData = arena

	return v, nil
}

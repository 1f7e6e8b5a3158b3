// Package projection adapts decoded column/.Vector values into a host
// columnar chunk, the shape an embedding analytical database pulls result
// rows through. No Go binding for a specific embedding database is part
// of this module's dependency surface, so Chunk is defined here as the
// minimal contract a host runtime must satisfy; a real integration
// implements it against that runtime's native vector API.
package projection

import "github.com/quackscience/duckdb-extension-clickhouse-native/types"

// HostType is the host chunk's column type tag, one per Native type
// family the decoder can produce.
type HostType int

const (
	HostInt8 HostType = iota
	HostInt16
	HostInt32
	HostInt64
	HostUInt8
	HostUInt16
	HostUInt32
	HostUInt64
	HostHugeInt  // 128-bit, used for Int128/UInt128 and as the UUID carrier
	HostFloat32
	HostFloat64
	HostVarchar // String, FixedString, IPv4/IPv6 text, Enum name, 256-bit fallback
	HostDate
	HostTimestamp
	HostDecimal
	HostBool
	HostUUID
	HostList
)

// Column describes one output column's static shape, returned from Bind.
type Column struct {
	Name      string
	Host      HostType
	Nullable  bool
	Element   *Column // set when Host == HostList
	TZ        string  // set for HostTimestamp when the source carried a tz literal
	Scale     uint8   // set for HostTimestamp (DateTime64) and HostDecimal
	Precision uint8   // set for HostDecimal
}

// Chunk is a host-owned columnar output buffer that Fill populates up to
// its capacity. A real binding wraps this around the host's native vector
// handles; this module's own implementation (chunk_builder.go) backs it
// with plain Go slices so the package is independently testable.
type Chunk interface {
	// Capacity reports the maximum number of rows this chunk can hold.
	Capacity() int
	// SetLen tells the host how many rows were actually written this call.
	SetLen(n int)
	// Vector returns the mutable output vector for column i.
	Vector(i int) VectorSink
}

// VectorSink is the per-column write surface of a host chunk. Only the
// subset of operations Projection needs is modeled.
type VectorSink interface {
	SetNull(row int)
	WriteInt64(row int, v int64)
	WriteUint64(row int, v uint64)
	WriteFloat64(row int, v float64)
	WriteString(row int, v string)
	WriteBool(row int, v bool)
	WriteHugeInt(row int, lo, hi uint64)
	// ListChild returns the child vector a HostList column appends
	// element values into, plus the offset entry writer for row.
	ListChild() VectorSink
	AppendListEntry(row int, childOffset, length int)
}

// mapHostType maps a Native type to the host column type that carries it.
func mapHostType(t *types.Type) (Column, error) {
	return mapHostTypeNullable(t, false)
}

func mapHostTypeNullable(t *types.Type, nullable bool) (Column, error) {
	switch t.Kind {
	case types.KindNullable:
		return mapHostTypeNullable(t.Inner, true)
	case types.KindLowCardinality:
		col, err := mapHostTypeNullable(t.Inner, nullable)
		return col, err
	case types.KindArray:
		elem, err := mapHostTypeNullable(t.Inner, false)
		if err != nil {
			return Column{}, err
		}

		return Column{Host: HostList, Nullable: nullable, Element: &elem}, nil
	case types.KindFixedString:
		return Column{Host: HostVarchar, Nullable: nullable}, nil
	case types.KindEnum8, types.KindEnum16:
		return Column{Host: HostVarchar, Nullable: nullable}, nil
	case types.KindDateTime:
		return Column{Host: HostTimestamp, Nullable: nullable, TZ: t.TZ}, nil
	case types.KindDateTime64:
		return Column{Host: HostTimestamp, Nullable: nullable, TZ: t.TZ, Scale: t.Precision}, nil
	case types.KindDecimal:
		if t.Precision > 38 {
			// Wider than the host decimal's 128-bit backing; projected as
			// text with the scale applied.
			return Column{Host: HostVarchar, Nullable: nullable, Precision: t.Precision, Scale: t.Scale}, nil
		}

		return Column{Host: HostDecimal, Nullable: nullable, Precision: t.Precision, Scale: t.Scale}, nil
	case types.KindPrimitive:
		return mapPrimitiveHostType(t.Primitive, nullable)
	default:
		return Column{}, errUnsupported(t)
	}
}

func mapPrimitiveHostType(p types.Primitive, nullable bool) (Column, error) {
	switch p {
	case types.Int8:
		return Column{Host: HostInt8, Nullable: nullable}, nil
	case types.Int16:
		return Column{Host: HostInt16, Nullable: nullable}, nil
	case types.Int32, types.Date32:
		return Column{Host: HostInt32, Nullable: nullable}, nil
	case types.Int64:
		return Column{Host: HostInt64, Nullable: nullable}, nil
	case types.Int128, types.UInt128:
		return Column{Host: HostHugeInt, Nullable: nullable}, nil
	case types.Int256, types.UInt256:
		return Column{Host: HostVarchar, Nullable: nullable}, nil
	case types.Bool:
		return Column{Host: HostBool, Nullable: nullable}, nil
	case types.UInt8:
		return Column{Host: HostUInt8, Nullable: nullable}, nil
	case types.UInt16, types.Date:
		return Column{Host: HostUInt16, Nullable: nullable}, nil
	case types.UInt32:
		return Column{Host: HostUInt32, Nullable: nullable}, nil
	case types.IPv4:
		return Column{Host: HostVarchar, Nullable: nullable}, nil
	case types.UInt64:
		return Column{Host: HostUInt64, Nullable: nullable}, nil
	case types.Float32:
		return Column{Host: HostFloat32, Nullable: nullable}, nil
	case types.Float64:
		return Column{Host: HostFloat64, Nullable: nullable}, nil
	case types.String:
		return Column{Host: HostVarchar, Nullable: nullable}, nil
	case types.UUID:
		return Column{Host: HostUUID, Nullable: nullable}, nil
	case types.IPv6:
		return Column{Host: HostVarchar, Nullable: nullable}, nil
	default:
		return Column{}, errUnsupportedPrimitive(p)
	}
}

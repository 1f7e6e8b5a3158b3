package projection

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/quackscience/duckdb-extension-clickhouse-native/block"
	"github.com/quackscience/duckdb-extension-clickhouse-native/column"
	"github.com/quackscience/duckdb-extension-clickhouse-native/endian"
	"github.com/quackscience/duckdb-extension-clickhouse-native/types"
)

// ipv4Order controls the octet order used when stringifying IPv4 values.
// The default treats the first wire byte as the leading octet; producers
// that write IPv4 least-significant octet first can be accommodated by
// flipping the engine.
var ipv4Order = endian.GetLittleEndianEngine()

// SetIPv4ByteOrder flips the octet order used for IPv4 text projection,
// returning the previous engine so callers can restore it.
func SetIPv4ByteOrder(e endian.EndianEngine) endian.EndianEngine {
	prev := ipv4Order
	ipv4Order = e

	return prev
}

// DeriveSchema builds the host-facing column descriptors for a block's
// type mapping. Bind calls this once against the first block; Scan assumes
// every later block matches (BlockReader already enforces that at the wire
// level).
func DeriveSchema(blk *block.Block) ([]Column, error) {
	cols := make([]Column, len(blk.Columns))

	for i, v := range blk.Columns {
		col, err := mapHostType(v.Type)
		if err != nil {
			return nil, fmt.Errorf("projection.DeriveSchema: column %q: %w", v.Name, err)
		}

		col.Name = v.Name
		cols[i] = col
	}

	return cols, nil
}

// Cursor tracks incremental consumption of one Block across repeated Fill
// calls, for a host whose output chunk is smaller than the block's row
// count.
type Cursor struct {
	row int
}

// Done reports whether every row of blk has already been emitted.
func (c *Cursor) Done(blk *block.Block) bool { return c.row >= blk.NumRows }

// Fill writes up to chunk's capacity rows from blk, starting at the
// cursor's current position, into chunk, and reports how many rows were
// written. Callers advance to the next block once Done reports true.
func Fill(blk *block.Block, cur *Cursor, schema []Column, chunk Chunk) (int, error) {
	remaining := blk.NumRows - cur.row
	n := chunk.Capacity()
	if remaining < n {
		n = remaining
	}

	listCursors := make(map[VectorSink]int)

	for colIdx, v := range blk.Columns {
		sink := chunk.Vector(colIdx)
		for row := 0; row < n; row++ {
			srcRow := cur.row + row
			if err := writeValue(sink, row, v, srcRow, schema[colIdx], listCursors); err != nil {
				return 0, fmt.Errorf("projection.Fill: column %q row %d: %w", v.Name, srcRow, err)
			}
		}
	}

	cur.row += n
	chunk.SetLen(n)

	return n, nil
}

// writeValue projects v's value at srcRow into sink's destRow, unwrapping
// Nullable (null slots stay null, placeholder values never surface) and
// flattening LowCardinality through its dictionary along the way.
func writeValue(sink VectorSink, destRow int, v *column.Vector, srcRow int, col Column, listCursors map[VectorSink]int) error {
	switch v.Type.Kind {
	case types.KindNullable:
		if v.Nulls.Get(srcRow) {
			sink.SetNull(destRow)

			return nil
		}

		return writeValue(sink, destRow, v.Inner, srcRow, col, listCursors)

	case types.KindLowCardinality:
		idx := int(v.Indices[srcRow])
		if v.Type.Inner.IsNullable() && idx == 0 {
			sink.SetNull(destRow)

			return nil
		}

		return writeValue(sink, destRow, v.Dictionary, idx, col, listCursors)

	case types.KindArray:
		var start uint64
		if srcRow > 0 {
			start = v.Offsets[srcRow-1]
		}
		end := v.Offsets[srcRow]
		length := int(end - start)

		child := sink.ListChild()
		childOffset := listCursors[child]

		elemCol := Column{}
		if col.Element != nil {
			elemCol = *col.Element
		}

		for i := 0; i < length; i++ {
			if err := writeValue(child, childOffset+i, v.Elements, int(start)+i, elemCol, listCursors); err != nil {
				return err
			}
		}

		listCursors[child] = childOffset + length
		sink.AppendListEntry(destRow, childOffset, length)

		return nil

	case types.KindFixedString:
		s := string(v.FixedData[srcRow*v.FixedWidth : (srcRow+1)*v.FixedWidth])
		sink.WriteString(destRow, s)

		return nil

	case types.KindEnum8, types.KindEnum16:
		name, ok := column.EnumName(v.Type, v, srcRow)
		if !ok {
			return fmt.Errorf("%w: %d", errEnumUnknownAtProjection, column.EnumValue(v.Type, v, srcRow))
		}
		sink.WriteString(destRow, name)

		return nil

	case types.KindDateTime:
		// Seconds since epoch scale up to the host timestamp's microseconds.
		sink.WriteInt64(destRow, int64(v.UInt32s[srcRow])*1_000_000)

		return nil

	case types.KindDateTime64:
		sink.WriteInt64(destRow, v.Int64s[srcRow])

		return nil

	case types.KindDecimal:
		return writeDecimal(sink, destRow, v, srcRow)

	case types.KindPrimitive:
		return writePrimitive(sink, destRow, v, srcRow)

	default:
		return errUnsupported(v.Type)
	}
}

func writePrimitive(sink VectorSink, destRow int, v *column.Vector, srcRow int) error {
	switch v.Type.Primitive {
	case types.Int8:
		sink.WriteInt64(destRow, int64(v.Int8s[srcRow]))
	case types.Int16:
		sink.WriteInt64(destRow, int64(v.Int16s[srcRow]))
	case types.Int32, types.Date32:
		sink.WriteInt64(destRow, int64(v.Int32s[srcRow]))
	case types.Int64:
		sink.WriteInt64(destRow, v.Int64s[srcRow])
	case types.Int128:
		lo, hi := v.Int128s[srcRow][0], v.Int128s[srcRow][1]
		sink.WriteHugeInt(destRow, lo, hi)
	case types.Int256:
		sink.WriteString(destRow, int256String(v.Int256s[srcRow]))
	case types.UInt8:
		sink.WriteUint64(destRow, uint64(v.UInt8s[srcRow]))
	case types.Bool:
		sink.WriteBool(destRow, v.UInt8s[srcRow] != 0)
	case types.UInt16, types.Date:
		sink.WriteUint64(destRow, uint64(v.UInt16s[srcRow]))
	case types.UInt32:
		sink.WriteUint64(destRow, uint64(v.UInt32s[srcRow]))
	case types.IPv4:
		sink.WriteString(destRow, formatIPv4(v.UInt32s[srcRow]))
	case types.UInt64:
		sink.WriteUint64(destRow, v.UInt64s[srcRow])
	case types.UInt128:
		lo, hi := v.UInt128s[srcRow][0], v.UInt128s[srcRow][1]
		sink.WriteHugeInt(destRow, lo, hi)
	case types.UUID:
		lo, hi := v.UInt128s[srcRow][0], v.UInt128s[srcRow][1]
		sink.WriteHugeInt(destRow, lo, hi)
	case types.UInt256:
		sink.WriteString(destRow, uint256String(v.UInt256s[srcRow]))
	case types.Float32:
		sink.WriteFloat64(destRow, float64(v.Float32s[srcRow]))
	case types.Float64:
		sink.WriteFloat64(destRow, v.Float64s[srcRow])
	case types.String:
		lo := v.StringOffsets[srcRow]
		hi := v.StringOffsets[srcRow+1]
		sink.WriteString(destRow, string(v.StringData[lo:hi]))
	case types.IPv6:
		sink.WriteString(destRow, formatIPv6(v.IPv6s[srcRow]))
	default:
		return errUnsupportedPrimitive(v.Type.Primitive)
	}

	return nil
}

// writeDecimal projects a Decimal(P,S) column. The underlying storage
// width was already chosen at decode time from the precision; only the
// 32/64-bit cases are exact host integers. 128-bit decimals ride the
// HugeInt carrier with the host applying Scale; 256-bit decimals render
// as decimal text with the scale already applied, the same text fallback
// Int256 uses — never a silent truncation.
func writeDecimal(sink VectorSink, destRow int, v *column.Vector, srcRow int) error {
	switch {
	case v.Int32s != nil:
		sink.WriteInt64(destRow, int64(v.Int32s[srcRow]))
	case v.Int64s != nil:
		sink.WriteInt64(destRow, v.Int64s[srcRow])
	case v.Int128s != nil:
		lo, hi := v.Int128s[srcRow][0], v.Int128s[srcRow][1]
		sink.WriteHugeInt(destRow, lo, hi)
	case v.Int256s != nil:
		sink.WriteString(destRow, applyDecimalScale(int256String(v.Int256s[srcRow]), v.Type.Scale))
	default:
		return errUnsupported(v.Type)
	}

	return nil
}

var two256 = new(big.Int).Lsh(big.NewInt(1), 256)

// uint256Big assembles the four little-endian 64-bit words into a big.Int.
func uint256Big(w [4]uint64) *big.Int {
	v := new(big.Int)
	for i := 3; i >= 0; i-- {
		v.Lsh(v, 64)
		v.Or(v, new(big.Int).SetUint64(w[i]))
	}

	return v
}

// uint256String renders a 256-bit unsigned value as decimal text.
func uint256String(w [4]uint64) string {
	return uint256Big(w).String()
}

// int256String renders a 256-bit two's-complement value as signed decimal
// text.
func int256String(w [4]uint64) string {
	v := uint256Big(w)
	if w[3]>>63 != 0 {
		v.Sub(v, two256)
	}

	return v.String()
}

// applyDecimalScale inserts the decimal point into an integer's text, so a
// Decimal's scaled-integer units read as the value they denote.
func applyDecimalScale(s string, scale uint8) string {
	if scale == 0 {
		return s
	}

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) <= int(scale) {
		s = strings.Repeat("0", int(scale)-len(s)+1) + s
	}

	point := len(s) - int(scale)
	s = s[:point] + "." + s[point:]
	if neg {
		s = "-" + s
	}

	return s
}

func formatIPv4(u uint32) string {
	b := ipv4Order.AppendUint32(make([]byte, 0, 4), u)

	return fmt.Sprintf("%d.%d.%d.%d", b[0], b[1], b[2], b[3])
}

func formatIPv6(b [16]byte) string {
	return fmt.Sprintf("%x:%x:%x:%x:%x:%x:%x:%x",
		uint16(b[0])<<8|uint16(b[1]), uint16(b[2])<<8|uint16(b[3]),
		uint16(b[4])<<8|uint16(b[5]), uint16(b[6])<<8|uint16(b[7]),
		uint16(b[8])<<8|uint16(b[9]), uint16(b[10])<<8|uint16(b[11]),
		uint16(b[12])<<8|uint16(b[13]), uint16(b[14])<<8|uint16(b[15]))
}

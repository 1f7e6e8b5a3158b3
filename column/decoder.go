package column

import (
	"fmt"

	"github.com/quackscience/duckdb-extension-clickhouse-native/errs"
	"github.com/quackscience/duckdb-extension-clickhouse-native/types"
	"github.com/quackscience/duckdb-extension-clickhouse-native/wire"
)

// Decoder decodes column bodies into Vectors given a parsed Type AST and a
// row count. It holds no state between columns; all of its methods are
// pure functions of (r, t, rows).
type Decoder struct{}

// NewDecoder creates a column body Decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode reads exactly the bytes of one column body for rows rows,
// dispatching on t.Kind.
func (d *Decoder) Decode(r *wire.Reader, name string, t *types.Type, rows int) (*Vector, error) {
	v, err := d.decode(r, t, rows)
	if err != nil {
		return nil, err
	}
	v.Name = name

	return v, nil
}

// decode dispatches on t.Kind and stamps t onto the produced Vector, so
// nested vectors (Nullable inners, Array elements, LowCardinality
// dictionaries) carry their own type for projection to dispatch on.
func (d *Decoder) decode(r *wire.Reader, t *types.Type, rows int) (*Vector, error) {
	v, err := d.decodeKind(r, t, rows)
	if err != nil {
		return nil, err
	}
	v.Type = t

	return v, nil
}

func (d *Decoder) decodeKind(r *wire.Reader, t *types.Type, rows int) (*Vector, error) {
	switch t.Kind {
	case types.KindPrimitive:
		return d.decodePrimitive(r, t, rows)
	case types.KindFixedString:
		return d.decodeFixedString(r, t, rows)
	case types.KindNullable:
		return d.decodeNullable(r, t, rows)
	case types.KindLowCardinality:
		return d.decodeLowCardinality(r, t, rows)
	case types.KindEnum8:
		return d.decodeEnum(r, t, rows, 1)
	case types.KindEnum16:
		return d.decodeEnum(r, t, rows, 2)
	case types.KindArray:
		return d.decodeArray(r, t, rows)
	case types.KindDateTime:
		return d.decodeDateTime(r, t, rows)
	case types.KindDateTime64:
		return d.decodeDateTime64(r, t, rows)
	case types.KindDecimal:
		return d.decodeDecimal(r, t, rows)
	default:
		return nil, fmt.Errorf("column.Decoder.Decode: %w: %s", errs.ErrUnsupportedType, t.String())
	}
}

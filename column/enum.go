package column

import (
	"github.com/quackscience/duckdb-extension-clickhouse-native/types"
	"github.com/quackscience/duckdb-extension-clickhouse-native/wire"
)

// decodeEnum reads rows signed integers of the given width (1 for Enum8,
// 2 for Enum16). The (name, value) mapping lives on t.Enum and is applied
// by Projection, not here — EnumUnknownValue can only be raised once a
// consumer asks for the name of a row, so this stays a pure read.
func (d *Decoder) decodeEnum(r *wire.Reader, t *types.Type, rows int, width int) (*Vector, error) {
	v := &Vector{Rows: rows}

	if width == 1 {
		v.Int8s = make([]int8, rows)
		for i := range v.Int8s {
			x, err := r.ReadI8()
			if err != nil {
				return nil, err
			}
			v.Int8s[i] = x
		}
	} else {
		v.Int16s = make([]int16, rows)
		for i := range v.Int16s {
			x, err := r.ReadI16()
			if err != nil {
				return nil, err
			}
			v.Int16s[i] = x
		}
	}

	return v, nil
}

// EnumName resolves the decoded integer at row i to its variant name from
// the Type's Enum table. The false return means no variant matches — used
// by Projection, kept here so the (vector, type) pairing needed to resolve
// it stays in one package.
func EnumName(t *types.Type, v *Vector, i int) (string, bool) {
	value := EnumValue(t, v, i)

	for _, variant := range t.Enum {
		if variant.Value == value {
			return variant.Name, true
		}
	}

	return "", false
}

// EnumValue returns the raw decoded enum integer at row i, widened to int32.
func EnumValue(t *types.Type, v *Vector, i int) int32 {
	if t.Kind == types.KindEnum8 {
		return int32(v.Int8s[i])
	}

	return int32(v.Int16s[i])
}

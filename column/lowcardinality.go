package column

import (
	"fmt"

	"github.com/quackscience/duckdb-extension-clickhouse-native/errs"
	"github.com/quackscience/duckdb-extension-clickhouse-native/types"
	"github.com/quackscience/duckdb-extension-clickhouse-native/wire"
)

const (
	lowCardinalitySupportedVersion = 1

	// The low byte of the flags u64 encodes the index-integer width; bit
	// 0x200 ("has additional keys") must be set for a well-formed
	// file-produced column; bit 0x100 ("needs update dictionary") is a
	// hint a file reader can ignore.
	lcIndexWidthMask    = 0xff
	lcHasAdditionalKeys = 0x200
)

const (
	lcIndexUInt8 = iota
	lcIndexUInt16
	lcIndexUInt32
	lcIndexUInt64
)

// decodeLowCardinality implements the protocol-version-1 layout: version,
// flags, dictionary, indices, then materialize by indirection at
// projection time (Vector keeps Dictionary+Indices separate so Projection
// can flatten once, not per access).
//
// For LowCardinality(Nullable(T)) the dictionary is written as plain T:
// null rows point at index 0, whose slot holds T's default value.
func (d *Decoder) decodeLowCardinality(r *wire.Reader, t *types.Type, rows int) (*Vector, error) {
	version, err := r.ReadU64()
	if err != nil {
		return nil, err
	}
	if version != lowCardinalitySupportedVersion {
		return nil, fmt.Errorf("column.decodeLowCardinality: %w: got version %d", errs.ErrLowCardinalityVersion, version)
	}

	flags, err := r.ReadU64()
	if err != nil {
		return nil, err
	}
	if flags&lcHasAdditionalKeys == 0 {
		return nil, fmt.Errorf("column.decodeLowCardinality: %w: missing has-additional-keys flag", errs.ErrBodyLengthMismatch)
	}
	indexWidth := flags & lcIndexWidthMask

	dictSize, err := r.ReadU64()
	if err != nil {
		return nil, err
	}

	dictType := t.Inner
	if dictType.IsNullable() {
		dictType = dictType.Inner
	}

	dictionary, err := d.decode(r, dictType, int(dictSize))
	if err != nil {
		return nil, err
	}

	rowCount, err := r.ReadU64()
	if err != nil {
		return nil, err
	}
	if rowCount != uint64(rows) {
		return nil, fmt.Errorf("column.decodeLowCardinality: %w: index row count %d != block row count %d",
			errs.ErrBodyLengthMismatch, rowCount, rows)
	}

	indices := make([]uint64, rowCount)
	for i := range indices {
		v, err := readLCIndex(r, indexWidth)
		if err != nil {
			return nil, err
		}
		indices[i] = v
	}

	return &Vector{Rows: rows, Dictionary: dictionary, Indices: indices}, nil
}

func readLCIndex(r *wire.Reader, width uint64) (uint64, error) {
	switch width {
	case lcIndexUInt8:
		v, err := r.ReadU8()
		return uint64(v), err
	case lcIndexUInt16:
		v, err := r.ReadU16()
		return uint64(v), err
	case lcIndexUInt32:
		v, err := r.ReadU32()
		return uint64(v), err
	case lcIndexUInt64:
		return r.ReadU64()
	default:
		return 0, fmt.Errorf("column.readLCIndex: %w: unknown index width %d", errs.ErrBodyLengthMismatch, width)
	}
}

package block

import (
	"fmt"
	"io"

	"github.com/quackscience/duckdb-extension-clickhouse-native/column"
	"github.com/quackscience/duckdb-extension-clickhouse-native/errs"
	"github.com/quackscience/duckdb-extension-clickhouse-native/types"
	"github.com/quackscience/duckdb-extension-clickhouse-native/wire"
)

// Reader is a pull-model iterator over a Native file's block stream.
//
// Reader enforces schema stability: every block after the first must
// declare the same (name, type) sequence, or Next returns ErrSchemaDrift.
// Reader is not safe for concurrent use and is not reusable after any
// error.
type Reader struct {
	wr       *wire.Reader
	parser   *types.Parser
	decoder  *column.Decoder
	schema   []schemaCol
	done     bool
	dead     bool
}

type schemaCol struct {
	name    string
	typeStr string
}

// NewReader creates a block Reader over r. parserOpts configures type
// parsing policy (e.g. fallback-to-String for unsupported types).
func NewReader(r io.Reader, parserOpts types.Options) *Reader {
	return &Reader{
		wr:      wire.NewReader(r),
		parser:  types.NewParser(parserOpts),
		decoder: column.NewDecoder(),
	}
}

// Next reads and decodes the next Block, returning (nil, nil) at a clean
// end-of-stream boundary. A block with n_cols = 0 or n_rows = 0 is legal
// and does NOT terminate iteration by itself; only EOF at the boundary
// before n_cols does. A zero-row, non-zero-column block is a valid no-op
// block.
func (br *Reader) Next() (*Block, error) {
	if br.dead {
		return nil, errs.ErrReaderClosed
	}
	if br.done {
		return nil, nil
	}

	if br.wr.AtEOF() {
		br.done = true
		return nil, nil
	}

	offset := br.wr.Offset()

	numCols, err := br.wr.ReadVarUint()
	if err != nil {
		br.dead = true
		return nil, errs.Wrap("block.Reader.Next", offset, err)
	}

	numRows, err := br.wr.ReadVarUint()
	if err != nil {
		br.dead = true
		return nil, errs.Wrap("block.Reader.Next", br.wr.Offset(), err)
	}

	blk := &Block{
		Names:   make([]string, numCols),
		Columns: make([]*column.Vector, numCols),
		NumRows: int(numRows),
	}

	cols := make([]schemaCol, numCols)
	for i := uint64(0); i < numCols; i++ {
		name, err := br.wr.ReadLString()
		if err != nil {
			br.dead = true
			return nil, errs.Wrap("block.Reader.Next", br.wr.Offset(), err)
		}

		typeStr, err := br.wr.ReadLString()
		if err != nil {
			br.dead = true
			return nil, errs.Wrap("block.Reader.Next", br.wr.Offset(), err)
		}

		ty, err := br.parser.Parse(typeStr)
		if err != nil {
			br.dead = true
			return nil, errs.Wrap("block.Reader.Next", br.wr.Offset(), err)
		}

		vec, err := br.decoder.Decode(br.wr, name, ty, int(numRows))
		if err != nil {
			br.dead = true
			return nil, errs.Wrap("block.Reader.Next", br.wr.Offset(), err)
		}

		blk.Names[i] = name
		blk.Columns[i] = vec
		cols[i] = schemaCol{name: name, typeStr: typeStr}
	}

	if br.schema == nil {
		br.schema = cols
	} else if err := compareSchema(br.schema, cols); err != nil {
		br.dead = true
		return nil, errs.Wrap("block.Reader.Next", offset, err)
	}

	return blk, nil
}

func compareSchema(want, got []schemaCol) error {
	if len(want) != len(got) {
		return fmt.Errorf("%w: column count %d != %d", errs.ErrSchemaDrift, len(got), len(want))
	}
	for i := range want {
		if want[i] != got[i] {
			return fmt.Errorf("%w: column %d is (%s %s), expected (%s %s)",
				errs.ErrSchemaDrift, i, got[i].name, got[i].typeStr, want[i].name, want[i].typeStr)
		}
	}

	return nil
}

// Schema returns the file's fixed (names, type strings) as established
// by the first decoded block. It is empty until the first Next call.
func (br *Reader) Schema() (names []string, typeStrs []string) {
	names = make([]string, len(br.schema))
	typeStrs = make([]string, len(br.schema))
	for i, c := range br.schema {
		names[i] = c.name
		typeStrs[i] = c.typeStr
	}

	return names, typeStrs
}

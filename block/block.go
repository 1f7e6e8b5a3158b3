// Package block iterates the Native format's (n_cols, n_rows, columns[])
// frames until EOF, producing Block values with bit-exact schema checks
// against the file's first block.
package block

import "github.com/quackscience/duckdb-extension-clickhouse-native/column"

// Block is one decoded frame: a fixed (name, type) schema plus n_rows
// worth of decoded column vectors, column-aligned.
type Block struct {
	Names   []string
	Columns []*column.Vector
	NumRows int
}

// NumCols returns the column count of the block.
func (b *Block) NumCols() int { return len(b.Columns) }

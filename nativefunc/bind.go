package nativefunc

import (
	"fmt"
	"io"
	"os"

	"github.com/quackscience/duckdb-extension-clickhouse-native/block"
	"github.com/quackscience/duckdb-extension-clickhouse-native/compress"
	"github.com/quackscience/duckdb-extension-clickhouse-native/projection"
	"github.com/quackscience/duckdb-extension-clickhouse-native/types"
)

// BindData is what Bind hands back to the host: the discovered schema,
// plus the opened reader and already-decoded first block stashed for the
// first Scan call so bind never decodes a block twice.
type BindData struct {
	Path   string
	Schema []projection.Column

	file   *os.File
	reader *block.Reader
	first  *block.Block
}

// Bind opens path, reads the first block's header to derive the schema,
// and stashes the reader plus first block for scan to consume. An empty
// file binds successfully to a zero-column schema; scan on it then yields
// no rows.
func Bind(path string, opts ...Option) (*BindData, error) {
	var cfg bindConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("nativefunc.Bind: %w", err)
	}

	var src io.Reader = f
	if cfg.compressedBlocks {
		src = compress.NewDecompressingReader(f)
	}

	r := block.NewReader(src, types.Options{FallbackToString: cfg.fallbackToString})

	first, err := r.Next()
	if err != nil {
		f.Close() //nolint:errcheck

		return nil, fmt.Errorf("nativefunc.Bind: %w", err)
	}

	var schema []projection.Column
	if first != nil {
		schema, err = projection.DeriveSchema(first)
		if err != nil {
			f.Close() //nolint:errcheck

			return nil, fmt.Errorf("nativefunc.Bind: %w", err)
		}
	}

	return &BindData{Path: path, Schema: schema, file: f, reader: r, first: first}, nil
}

// Close releases the bound file handle. Safe to call if no scan was ever
// started from this bind data.
func (b *BindData) Close() error {
	return b.file.Close()
}

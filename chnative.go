// Package chnative decodes ClickHouse Native-format files directly,
// without a server round trip, and projects their blocks into a host
// columnar chunk.
//
// # Core Features
//
//   - Streaming block-by-block decoding with no full-file buffering
//   - Free-form type-string parsing into a typed AST (Nullable, Array,
//     LowCardinality, Enum8/16, FixedString, Decimal, DateTime64, ...)
//   - Schema-stability enforcement across a file's blocks
//   - A two-phase bind/scan contract matching a table function's lifecycle
//   - Optional per-block decompression (LZ4, ZSTD) for files that carry
//     block-level compression framing
//
// # Basic Usage
//
//	data, err := chnative.Open("metrics.native")
//	if err != nil {
//	    // handle error
//	}
//	defer data.Close()
//
//	state, err := chnative.NewScan(data)
//	if err != nil {
//	    // handle error
//	}
//	defer state.Close()
//
//	chunk := projection.NewSliceChunk(1024, data.Schema)
//	for {
//	    n, err := state.Scan(chunk)
//	    if err != nil {
//	        // handle error
//	    }
//	    if n == 0 {
//	        break
//	    }
//	    // consume chunk
//	}
//
// # Package Structure
//
// This package is a thin convenience wrapper over nativefunc (the bind/scan
// contract), block (the Native frame reader), types (type-string parsing),
// column (column body decoding), and projection (host chunk adaptation).
// Advanced callers can use those packages directly for finer control, such
// as driving a custom Chunk implementation against a real host runtime.
package chnative

import (
	"github.com/quackscience/duckdb-extension-clickhouse-native/nativefunc"
	"github.com/quackscience/duckdb-extension-clickhouse-native/projection"
)

// Data is the bound schema and opened file state for one Native file.
type Data = nativefunc.BindData

// ScanState pulls rows from a bound file into a host chunk.
type ScanState = nativefunc.ScanState

// Chunk is the host-owned output buffer Scan fills.
type Chunk = projection.Chunk

// Open binds path, discovering its column schema from the first block.
// Options such as nativefunc.WithCompressedBlocks and
// nativefunc.WithFallbackToString pass through to the bind.
func Open(path string, opts ...nativefunc.Option) (*Data, error) {
	return nativefunc.Bind(path, opts...)
}

// NewScan derives a scan cursor over data, starting from its first block.
func NewScan(data *Data) (*ScanState, error) {
	return nativefunc.NewScanState(data)
}

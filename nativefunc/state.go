package nativefunc

import (
	"github.com/quackscience/duckdb-extension-clickhouse-native/block"
	"github.com/quackscience/duckdb-extension-clickhouse-native/projection"
)

// ScanState is the per-query cursor handed out by NewScanState: one
// reader, one current block, one row cursor, matching the single-threaded
// resource model — no internal parallelism, one file handle per instance.
type ScanState struct {
	data      *BindData
	current   *block.Block
	cursor    projection.Cursor
	started   bool
	exhausted bool
}

// NewScanState derives a fresh scan cursor from bind data, starting from
// the first block Bind already decoded. Only one ScanState should be
// driven from a given BindData at a time; this module doesn't support
// rewinding a file to serve two concurrent scans from one bind.
func NewScanState(data *BindData) (*ScanState, error) {
	return &ScanState{data: data}, nil
}

// Close releases the underlying file handle.
func (s *ScanState) Close() error {
	return s.data.Close()
}

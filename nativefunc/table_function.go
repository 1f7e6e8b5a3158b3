// Package nativefunc implements the two-phase table function contract a
// host embedding database drives a scan through: bind once to discover the
// schema, then scan repeatedly until the source is exhausted. No Go
// binding to a specific embedding database's C API is part of this
// module's dependency surface; TableFunction models the shape such a
// binding drives, the way the underlying block/projection packages are
// actually driven by this package's own Bind/ScanState pair.
package nativefunc

import "github.com/quackscience/duckdb-extension-clickhouse-native/projection"

// TableFunction is the contract a host's table-function glue implements
// against: bind(path) once per query, then scan(chunk) repeatedly until it
// reports zero rows with no error.
type TableFunction interface {
	// Bind opens path and returns the column schema the host should expose.
	Bind(path string) (*BindData, error)
	// NewScan derives a fresh per-query scan cursor from bind data.
	NewScan(data *BindData) (*ScanState, error)
}

// nativeTableFunction is the default TableFunction, backed by this
// module's block/projection packages.
type nativeTableFunction struct{}

// NewTableFunction returns the clickhouse_native table function.
func NewTableFunction() TableFunction { return nativeTableFunction{} }

func (nativeTableFunction) Bind(path string) (*BindData, error) { return Bind(path) }

func (nativeTableFunction) NewScan(data *BindData) (*ScanState, error) { return NewScanState(data) }

// Columns exposes the bound schema for a host's table-function
// registration: one projection.Column (name, host type, nullability and
// type metadata) per output column, in file order.
func Columns(data *BindData) []projection.Column { return data.Schema }

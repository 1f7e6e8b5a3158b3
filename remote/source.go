package remote

import (
	"context"

	"github.com/quackscience/duckdb-extension-clickhouse-native/block"
	"github.com/quackscience/duckdb-extension-clickhouse-native/errs"
)

// BlockSource produces server-decoded blocks with identical semantics to
// the file reader's: schema-stable across calls, io.EOF-shaped
// termination signaled by a nil Block and nil error.
type BlockSource interface {
	Next(ctx context.Context) (*block.Block, error)
	Close() error
}

// Dial would open a connection to a ClickHouse server and return a
// BlockSource driven by the given query. Implementing the wire protocol
// (handshake, query execution, compressed block streaming) is out of
// scope for this module; Dial exists only to give the boundary a concrete
// call site.
func Dial(_ context.Context, _ DSN, _ string) (BlockSource, error) {
	return nil, errs.ErrRemoteNotImplemented
}

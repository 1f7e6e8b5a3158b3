package projection

import (
	"fmt"

	"github.com/quackscience/duckdb-extension-clickhouse-native/errs"
	"github.com/quackscience/duckdb-extension-clickhouse-native/types"
)

func errUnsupported(t *types.Type) error {
	return fmt.Errorf("projection: %w: %s", errs.ErrProjectionUnsupported, t.String())
}

func errUnsupportedPrimitive(p types.Primitive) error {
	return fmt.Errorf("projection: %w: %s", errs.ErrProjectionUnsupported, p.String())
}

var errEnumUnknownAtProjection = errs.ErrEnumUnknownValue

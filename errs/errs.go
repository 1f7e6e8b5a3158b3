// Package errs defines the sentinel errors shared across the decoder.
//
// Callers wrap these with fmt.Errorf("...: %w", errs.ErrXxx) to attach
// context; errors.Is still matches against the sentinel.
package errs

import "errors"

var (
	// ErrUnexpectedEOF is returned when a structure is truncated mid-read.
	ErrUnexpectedEOF = errors.New("chnative: unexpected end of file")
	// ErrMalformedVarint is returned when a varuint exceeds 10 bytes or overflows u64.
	ErrMalformedVarint = errors.New("chnative: malformed varint")
	// ErrInvalidUTF8 is returned when a name or type string is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("chnative: invalid utf-8")

	// ErrTypeSyntax is returned for a malformed type expression.
	ErrTypeSyntax = errors.New("chnative: type syntax error")
	// ErrUnsupportedType is returned for an unrecognized type identifier.
	ErrUnsupportedType = errors.New("chnative: unsupported type")
	// ErrNestedNullable is returned when Nullable(Nullable(T)) is parsed.
	ErrNestedNullable = errors.New("chnative: nested Nullable is not allowed")
	// ErrNullableOfLowCardinality is returned for Nullable(LowCardinality(T)), which ClickHouse never writes.
	ErrNullableOfLowCardinality = errors.New("chnative: Nullable(LowCardinality(T)) is not a valid Native type")
	// ErrEnumValueRange is returned when an enum literal does not fit its declared width.
	ErrEnumValueRange = errors.New("chnative: enum value out of range")
	// ErrDecimalOutOfRange is returned when Decimal(P,S) precision/scale are out of bounds.
	ErrDecimalOutOfRange = errors.New("chnative: decimal precision/scale out of range")
	// ErrDateTime64PrecisionRange is returned when DateTime64 precision is outside [0,9].
	ErrDateTime64PrecisionRange = errors.New("chnative: DateTime64 precision out of range")

	// ErrEnumUnknownValue is returned when a decoded enum integer has no matching variant.
	ErrEnumUnknownValue = errors.New("chnative: enum value has no matching variant")
	// ErrSchemaDrift is returned when a later block's (names, types) differ from the first block's.
	ErrSchemaDrift = errors.New("chnative: block schema does not match file schema")
	// ErrBodyLengthMismatch is returned when a column decoder consumes the wrong number of bytes.
	ErrBodyLengthMismatch = errors.New("chnative: column body length mismatch")
	// ErrNumericOverflow is returned when an Array's total element count exceeds representable range.
	ErrNumericOverflow = errors.New("chnative: numeric overflow")
	// ErrNonMonotonicOffsets is returned when Array offsets decrease.
	ErrNonMonotonicOffsets = errors.New("chnative: array offsets are not monotonically non-decreasing")

	// ErrLowCardinalityVersion is returned when the LowCardinality state version is not 1.
	ErrLowCardinalityVersion = errors.New("chnative: unsupported LowCardinality version")

	// ErrProjectionUnsupported is returned when the host runtime cannot represent a Native type.
	ErrProjectionUnsupported = errors.New("chnative: host runtime cannot represent this type")

	// ErrRemoteNotImplemented is returned by the remote-scan boundary stub.
	ErrRemoteNotImplemented = errors.New("chnative: clickhouse_scan is not implemented by this module")

	// ErrReaderClosed is returned when block.Reader.Next is called again after it failed.
	ErrReaderClosed = errors.New("chnative: reader is closed after a prior error")
)

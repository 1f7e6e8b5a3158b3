package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quackscience/duckdb-extension-clickhouse-native/errs"
)

func TestParsePrimitives(t *testing.T) {
	p := NewParser(Options{})

	cases := map[string]Primitive{
		"Int8": Int8, "UInt64": UInt64, "Float64": Float64,
		"String": String, "UUID": UUID, "Date": Date, "Bool": Bool,
		"IPv4": IPv4, "IPv6": IPv6,
	}
	for expr, want := range cases {
		got, err := p.Parse(expr)
		require.NoError(t, err, expr)
		require.Equal(t, KindPrimitive, got.Kind)
		require.Equal(t, want, got.Primitive)
	}
}

func TestParseFixedString(t *testing.T) {
	p := NewParser(Options{})

	got, err := p.Parse("FixedString(16)")
	require.NoError(t, err)
	require.Equal(t, KindFixedString, got.Kind)
	require.Equal(t, uint32(16), got.FixedLen)
}

func TestParseNullable(t *testing.T) {
	p := NewParser(Options{})

	got, err := p.Parse("Nullable(String)")
	require.NoError(t, err)
	require.True(t, got.IsNullable())
	require.Equal(t, KindPrimitive, got.Inner.Kind)
	require.Equal(t, String, got.Inner.Primitive)
}

func TestParseNestedNullableRejected(t *testing.T) {
	p := NewParser(Options{})

	_, err := p.Parse("Nullable(Nullable(String))")
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrNestedNullable))
}

func TestParseNullableOfLowCardinalityRejected(t *testing.T) {
	p := NewParser(Options{})

	_, err := p.Parse("Nullable(LowCardinality(String))")
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrNullableOfLowCardinality))
}

func TestParseLowCardinalityOfNullable(t *testing.T) {
	p := NewParser(Options{})

	got, err := p.Parse("LowCardinality(Nullable(String))")
	require.NoError(t, err)
	require.True(t, got.IsLowCardinality())
	require.True(t, got.Inner.IsNullable())
}

func TestParseArray(t *testing.T) {
	p := NewParser(Options{})

	got, err := p.Parse("Array(UInt32)")
	require.NoError(t, err)
	require.Equal(t, KindArray, got.Kind)
	require.Equal(t, UInt32, got.Inner.Primitive)
}

func TestParseDeeplyNested(t *testing.T) {
	p := NewParser(Options{})

	got, err := p.Parse("LowCardinality(Nullable(Enum8('a' = 1, 'b' = 2)))")
	require.NoError(t, err)
	require.True(t, got.IsLowCardinality())
	require.True(t, got.Inner.IsNullable())
	require.Equal(t, KindEnum8, got.Inner.Inner.Kind)
	require.Len(t, got.Inner.Inner.Enum, 2)
}

func TestParseEnum8(t *testing.T) {
	p := NewParser(Options{})

	got, err := p.Parse("Enum8('a' = 1, 'b' = 2)")
	require.NoError(t, err)
	require.Equal(t, KindEnum8, got.Kind)
	require.Equal(t, []EnumVariant{{Name: "a", Value: 1}, {Name: "b", Value: 2}}, got.Enum)
}

func TestParseEnumValueOutOfRange(t *testing.T) {
	p := NewParser(Options{})

	_, err := p.Parse("Enum8('a' = 200)")
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrEnumValueRange))
}

func TestParseDateTimeWithTimezone(t *testing.T) {
	p := NewParser(Options{})

	got, err := p.Parse("DateTime('UTC')")
	require.NoError(t, err)
	require.Equal(t, KindDateTime, got.Kind)
	require.Equal(t, "UTC", got.TZ)

	bare, err := p.Parse("DateTime")
	require.NoError(t, err)
	require.Equal(t, "", bare.TZ)
}

func TestParseDateTime64(t *testing.T) {
	p := NewParser(Options{})

	got, err := p.Parse("DateTime64(3, 'UTC')")
	require.NoError(t, err)
	require.Equal(t, uint8(3), got.Precision)
	require.Equal(t, "UTC", got.TZ)

	noTZ, err := p.Parse("DateTime64(6)")
	require.NoError(t, err)
	require.Equal(t, uint8(6), noTZ.Precision)
	require.Equal(t, "", noTZ.TZ)
}

func TestParseDateTime64PrecisionOutOfRange(t *testing.T) {
	p := NewParser(Options{})

	_, err := p.Parse("DateTime64(10)")
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrDateTime64PrecisionRange))
}

func TestParseDecimal(t *testing.T) {
	p := NewParser(Options{})

	got, err := p.Parse("Decimal(18, 4)")
	require.NoError(t, err)
	require.Equal(t, uint8(18), got.Precision)
	require.Equal(t, uint8(4), got.Scale)
}

func TestParseFixedWidthDecimalNormalizes(t *testing.T) {
	p := NewParser(Options{})

	cases := map[string]uint8{
		"Decimal32(2)":  9,
		"Decimal64(4)":  18,
		"Decimal128(6)": 38,
		"Decimal256(8)": 76,
	}
	for expr, wantPrecision := range cases {
		got, err := p.Parse(expr)
		require.NoError(t, err, expr)
		require.Equal(t, KindDecimal, got.Kind)
		require.Equal(t, wantPrecision, got.Precision)
	}
}

func TestParseDecimalOutOfRange(t *testing.T) {
	p := NewParser(Options{})

	_, err := p.Parse("Decimal(80, 4)")
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrDecimalOutOfRange))

	_, err = p.Parse("Decimal(5, 10)")
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrDecimalOutOfRange))
}

func TestParseUnsupportedType(t *testing.T) {
	p := NewParser(Options{})

	_, err := p.Parse("Tuple(Int8, String)")
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrUnsupportedType))
}

func TestParseUnsupportedTypeFallbackToString(t *testing.T) {
	p := NewParser(Options{FallbackToString: true})

	got, err := p.Parse("Tuple(Int8, String)")
	require.NoError(t, err)
	require.Equal(t, KindPrimitive, got.Kind)
	require.Equal(t, String, got.Primitive)
}

func TestParseSyntaxError(t *testing.T) {
	p := NewParser(Options{})

	_, err := p.Parse("Nullable(")
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrTypeSyntax))
}

func TestTypeStringRoundTrips(t *testing.T) {
	p := NewParser(Options{})

	exprs := []string{
		"Int64", "Nullable(String)", "Array(UInt32)",
		"FixedString(16)", "Decimal(18, 4)", "DateTime64(3, 'UTC')",
	}
	for _, expr := range exprs {
		parsed, err := p.Parse(expr)
		require.NoError(t, err)
		require.Equal(t, expr, parsed.String())
	}
}

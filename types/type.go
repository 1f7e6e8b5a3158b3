// Package types parses ClickHouse Native type expressions — free-form
// strings such as "LowCardinality(Nullable(Enum8('a'=1,'b'=2)))" — into a
// type AST, and renders that AST back to its canonical string form.
package types

import "fmt"

// Kind identifies the tag of a Type sum-type value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindPrimitive
	KindFixedString
	KindNullable
	KindLowCardinality
	KindEnum8
	KindEnum16
	KindArray
	KindDateTime
	KindDateTime64
	KindDecimal
)

// Primitive identifies one of the fixed, argument-less scalar kinds.
type Primitive uint8

const (
	PrimitiveInvalid Primitive = iota
	Int8
	Int16
	Int32
	Int64
	Int128
	Int256
	UInt8
	UInt16
	UInt32
	UInt64
	UInt128
	UInt256
	Float32
	Float64
	String
	UUID
	Date
	Date32
	Bool
	IPv4
	IPv6
)

var primitiveNames = map[string]Primitive{
	"Int8": Int8, "Int16": Int16, "Int32": Int32, "Int64": Int64,
	"Int128": Int128, "Int256": Int256,
	"UInt8": UInt8, "UInt16": UInt16, "UInt32": UInt32, "UInt64": UInt64,
	"UInt128": UInt128, "UInt256": UInt256,
	"Float32": Float32, "Float64": Float64,
	"String": String, "UUID": UUID, "Date": Date, "Date32": Date32,
	"Bool": Bool, "IPv4": IPv4, "IPv6": IPv6,
}

func (p Primitive) String() string {
	for name, k := range primitiveNames {
		if k == p {
			return name
		}
	}

	return "Invalid"
}

// EnumVariant is one (name, value) pair of an Enum8/Enum16 declaration.
type EnumVariant struct {
	Name  string
	Value int32 // holds an int8 or int16 depending on the enclosing Kind
}

// Type is a tagged union over the Native type AST described in the format
// notes. Only the fields relevant to Kind are populated; the zero value is
// KindInvalid.
type Type struct {
	Kind Kind

	Primitive Primitive // KindPrimitive
	FixedLen  uint32    // KindFixedString

	Inner *Type // KindNullable, KindLowCardinality, KindArray

	Enum []EnumVariant // KindEnum8, KindEnum16

	TZ string // KindDateTime, KindDateTime64 (optional, "" if absent)

	Precision uint8 // KindDateTime64 (0..9), KindDecimal (1..76)
	Scale     uint8 // KindDecimal (0..Precision)
}

// Primitive constructors, used by tests and by the parser.

func NewPrimitive(p Primitive) *Type { return &Type{Kind: KindPrimitive, Primitive: p} }

func NewFixedString(n uint32) *Type { return &Type{Kind: KindFixedString, FixedLen: n} }

func NewNullable(inner *Type) *Type { return &Type{Kind: KindNullable, Inner: inner} }

func NewLowCardinality(inner *Type) *Type { return &Type{Kind: KindLowCardinality, Inner: inner} }

func NewArray(inner *Type) *Type { return &Type{Kind: KindArray, Inner: inner} }

func NewEnum8(variants []EnumVariant) *Type { return &Type{Kind: KindEnum8, Enum: variants} }

func NewEnum16(variants []EnumVariant) *Type { return &Type{Kind: KindEnum16, Enum: variants} }

func NewDateTime(tz string) *Type { return &Type{Kind: KindDateTime, TZ: tz} }

func NewDateTime64(precision uint8, tz string) *Type {
	return &Type{Kind: KindDateTime64, Precision: precision, TZ: tz}
}

func NewDecimal(precision, scale uint8) *Type {
	return &Type{Kind: KindDecimal, Precision: precision, Scale: scale}
}

// IsNullable reports whether t is a Nullable(...) wrapper.
func (t *Type) IsNullable() bool { return t != nil && t.Kind == KindNullable }

// IsLowCardinality reports whether t is a LowCardinality(...) wrapper.
func (t *Type) IsLowCardinality() bool { return t != nil && t.Kind == KindLowCardinality }

// String renders t back to ClickHouse's canonical type-expression syntax.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind {
	case KindPrimitive:
		return t.Primitive.String()
	case KindFixedString:
		return fmt.Sprintf("FixedString(%d)", t.FixedLen)
	case KindNullable:
		return fmt.Sprintf("Nullable(%s)", t.Inner.String())
	case KindLowCardinality:
		return fmt.Sprintf("LowCardinality(%s)", t.Inner.String())
	case KindEnum8:
		return formatEnum("Enum8", t.Enum)
	case KindEnum16:
		return formatEnum("Enum16", t.Enum)
	case KindArray:
		return fmt.Sprintf("Array(%s)", t.Inner.String())
	case KindDateTime:
		if t.TZ == "" {
			return "DateTime"
		}

		return fmt.Sprintf("DateTime('%s')", t.TZ)
	case KindDateTime64:
		if t.TZ == "" {
			return fmt.Sprintf("DateTime64(%d)", t.Precision)
		}

		return fmt.Sprintf("DateTime64(%d, '%s')", t.Precision, t.TZ)
	case KindDecimal:
		return fmt.Sprintf("Decimal(%d, %d)", t.Precision, t.Scale)
	default:
		return "Invalid"
	}
}

func formatEnum(name string, variants []EnumVariant) string {
	s := name + "("
	for i, v := range variants {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("'%s' = %d", v.Name, v.Value)
	}

	return s + ")"
}

package types

import (
	"fmt"
	"strconv"

	"github.com/quackscience/duckdb-extension-clickhouse-native/errs"
)

// Options configures type-parsing policy.
type Options struct {
	// FallbackToString makes Parse map any unrecognized type identifier to
	// a plain String column instead of failing. Disabled by default: the
	// core policy is to surface unsupported types, not silently coerce
	// them.
	FallbackToString bool
}

// Parser parses ClickHouse Native type expressions into a Type AST.
type Parser struct {
	opts Options
}

// NewParser creates a Parser with the given Options.
func NewParser(opts Options) *Parser {
	return &Parser{opts: opts}
}

// Parse parses a single type expression, e.g.
// "LowCardinality(Nullable(Enum8('a' = 1, 'b' = 2)))".
func (p *Parser) Parse(expr string) (*Type, error) {
	tz := newTokenizer(expr)
	tok, err := tz.next()
	if err != nil {
		return nil, err
	}

	t, err := p.parseType(tz, tok)
	if err != nil {
		return nil, err
	}

	end, err := tz.next()
	if err != nil {
		return nil, err
	}
	if end.kind != tokEOF {
		return nil, fmt.Errorf("%w at %d: trailing input after type expression", errs.ErrTypeSyntax, end.pos)
	}

	return t, nil
}

// parseType parses one Type starting at tok (already consumed from tz),
// consuming tz further for any parenthesized argument list.
func (p *Parser) parseType(tz *tokenizer, tok token) (*Type, error) {
	if tok.kind != tokIdent {
		return nil, fmt.Errorf("%w at %d: expected a type name", errs.ErrTypeSyntax, tok.pos)
	}

	name := tok.text

	hasArgs, err := p.peekLParen(tz)
	if err != nil {
		return nil, err
	}

	switch name {
	case "Nullable":
		if !hasArgs {
			return nil, fmt.Errorf("%w at %d: Nullable requires an inner type", errs.ErrTypeSyntax, tok.pos)
		}
		inner, err := p.parseParenType(tz)
		if err != nil {
			return nil, err
		}
		if inner.IsNullable() {
			return nil, errs.ErrNestedNullable
		}
		if inner.IsLowCardinality() {
			return nil, errs.ErrNullableOfLowCardinality
		}

		return NewNullable(inner), nil

	case "LowCardinality":
		if !hasArgs {
			return nil, fmt.Errorf("%w at %d: LowCardinality requires an inner type", errs.ErrTypeSyntax, tok.pos)
		}
		inner, err := p.parseParenType(tz)
		if err != nil {
			return nil, err
		}

		return NewLowCardinality(inner), nil

	case "Array":
		if !hasArgs {
			return nil, fmt.Errorf("%w at %d: Array requires an inner type", errs.ErrTypeSyntax, tok.pos)
		}
		inner, err := p.parseParenType(tz)
		if err != nil {
			return nil, err
		}

		return NewArray(inner), nil

	case "FixedString":
		n, err := p.parseSingleUintArg(tz, hasArgs, name)
		if err != nil {
			return nil, err
		}

		return NewFixedString(uint32(n)), nil

	case "Enum8":
		variants, err := p.parseEnumVariants(tz, hasArgs, name, 8)
		if err != nil {
			return nil, err
		}

		return NewEnum8(variants), nil

	case "Enum16":
		variants, err := p.parseEnumVariants(tz, hasArgs, name, 16)
		if err != nil {
			return nil, err
		}

		return NewEnum16(variants), nil

	case "DateTime":
		return p.parseDateTime(tz, hasArgs)

	case "DateTime64":
		return p.parseDateTime64(tz, hasArgs)

	case "Decimal":
		return p.parseDecimal(tz, hasArgs)

	case "Decimal32", "Decimal64", "Decimal128", "Decimal256":
		return p.parseFixedDecimal(tz, hasArgs, name, tok.pos)

	default:
		if prim, ok := primitiveNames[name]; ok {
			if hasArgs {
				return nil, fmt.Errorf("%w at %d: %s takes no arguments", errs.ErrTypeSyntax, tok.pos, name)
			}

			return NewPrimitive(prim), nil
		}

		if hasArgs {
			// Consume and discard the balanced argument list so the caller
			// still sees a clean trailing-input check; unknown types can
			// carry arbitrary arguments, e.g. Tuple(Int8, String).
			if err := p.skipParenGroup(tz); err != nil {
				return nil, err
			}
		}

		if p.opts.FallbackToString {
			return NewPrimitive(String), nil
		}

		return nil, fmt.Errorf("%w: %s", errs.ErrUnsupportedType, name)
	}
}

// peekLParen reports whether the next token is '(' without permanently
// consuming tokens that don't belong to this type (it does consume the
// '(' itself when found, since every caller that asks immediately needs
// to parse the argument list).
func (p *Parser) peekLParen(tz *tokenizer) (bool, error) {
	save := tz.pos
	tok, err := tz.next()
	if err != nil {
		return false, err
	}
	if tok.kind == tokLParen {
		return true, nil
	}
	tz.pos = save

	return false, nil
}

// skipParenGroup consumes tokens until the ')' matching an already-consumed
// '(' has been read, tracking nesting depth.
func (p *Parser) skipParenGroup(tz *tokenizer) error {
	depth := 1
	for depth > 0 {
		tok, err := tz.next()
		if err != nil {
			return err
		}

		switch tok.kind {
		case tokLParen:
			depth++
		case tokRParen:
			depth--
		case tokEOF:
			return fmt.Errorf("%w at %d: unbalanced '('", errs.ErrTypeSyntax, tok.pos)
		}
	}

	return nil
}

// parseParenType parses "(" Type ")" assuming the '(' has already been consumed.
func (p *Parser) parseParenType(tz *tokenizer) (*Type, error) {
	tok, err := tz.next()
	if err != nil {
		return nil, err
	}

	inner, err := p.parseType(tz, tok)
	if err != nil {
		return nil, err
	}

	closeTok, err := tz.next()
	if err != nil {
		return nil, err
	}
	if closeTok.kind != tokRParen {
		return nil, fmt.Errorf("%w at %d: expected ')'", errs.ErrTypeSyntax, closeTok.pos)
	}

	return inner, nil
}

func (p *Parser) parseSingleUintArg(tz *tokenizer, hasArgs bool, name string) (uint64, error) {
	if !hasArgs {
		return 0, fmt.Errorf("%w: %s requires a length argument", errs.ErrTypeSyntax, name)
	}

	tok, err := tz.next()
	if err != nil {
		return 0, err
	}
	if tok.kind != tokNumber {
		return 0, fmt.Errorf("%w at %d: expected a number", errs.ErrTypeSyntax, tok.pos)
	}

	n, err := strconv.ParseUint(tok.text, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w at %d: %s", errs.ErrTypeSyntax, tok.pos, err)
	}

	if err := p.expectRParen(tz); err != nil {
		return 0, err
	}

	return n, nil
}

func (p *Parser) expectRParen(tz *tokenizer) error {
	tok, err := tz.next()
	if err != nil {
		return err
	}
	if tok.kind != tokRParen {
		return fmt.Errorf("%w at %d: expected ')'", errs.ErrTypeSyntax, tok.pos)
	}

	return nil
}

func (p *Parser) parseEnumVariants(tz *tokenizer, hasArgs bool, name string, width int) ([]EnumVariant, error) {
	if !hasArgs {
		return nil, fmt.Errorf("%w: %s requires a variant list", errs.ErrTypeSyntax, name)
	}

	var variants []EnumVariant
	for {
		nameTok, err := tz.next()
		if err != nil {
			return nil, err
		}
		if nameTok.kind != tokString {
			return nil, fmt.Errorf("%w at %d: expected a quoted enum name", errs.ErrTypeSyntax, nameTok.pos)
		}

		eqTok, err := tz.next()
		if err != nil {
			return nil, err
		}
		if eqTok.kind != tokEquals {
			return nil, fmt.Errorf("%w at %d: expected '='", errs.ErrTypeSyntax, eqTok.pos)
		}

		valTok, err := tz.next()
		if err != nil {
			return nil, err
		}
		if valTok.kind != tokNumber {
			return nil, fmt.Errorf("%w at %d: expected an enum value", errs.ErrTypeSyntax, valTok.pos)
		}

		val, err := strconv.ParseInt(valTok.text, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w at %d: %s", errs.ErrTypeSyntax, valTok.pos, err)
		}

		limit := int64(1 << (width - 1))
		if val < -limit || val >= limit {
			return nil, fmt.Errorf("%w: %d does not fit Enum%d", errs.ErrEnumValueRange, val, width)
		}

		variants = append(variants, EnumVariant{Name: nameTok.text, Value: int32(val)})

		sep, err := tz.next()
		if err != nil {
			return nil, err
		}
		switch sep.kind {
		case tokComma:
			continue
		case tokRParen:
			return variants, nil
		default:
			return nil, fmt.Errorf("%w at %d: expected ',' or ')'", errs.ErrTypeSyntax, sep.pos)
		}
	}
}

func (p *Parser) parseDateTime(tz *tokenizer, hasArgs bool) (*Type, error) {
	if !hasArgs {
		return NewDateTime(""), nil
	}

	tzTok, err := tz.next()
	if err != nil {
		return nil, err
	}
	if tzTok.kind != tokString {
		return nil, fmt.Errorf("%w at %d: expected a quoted timezone", errs.ErrTypeSyntax, tzTok.pos)
	}

	if err := p.expectRParen(tz); err != nil {
		return nil, err
	}

	return NewDateTime(tzTok.text), nil
}

func (p *Parser) parseDateTime64(tz *tokenizer, hasArgs bool) (*Type, error) {
	if !hasArgs {
		return nil, fmt.Errorf("%w: DateTime64 requires a precision argument", errs.ErrTypeSyntax)
	}

	precTok, err := tz.next()
	if err != nil {
		return nil, err
	}
	if precTok.kind != tokNumber {
		return nil, fmt.Errorf("%w at %d: expected a precision number", errs.ErrTypeSyntax, precTok.pos)
	}

	prec, err := strconv.ParseUint(precTok.text, 10, 8)
	if err != nil || prec > 9 {
		return nil, fmt.Errorf("%w: DateTime64 precision must be 0..9", errs.ErrDateTime64PrecisionRange)
	}

	sep, err := tz.next()
	if err != nil {
		return nil, err
	}

	var tzName string
	switch sep.kind {
	case tokRParen:
		return NewDateTime64(uint8(prec), ""), nil
	case tokComma:
		tzTok, err := tz.next()
		if err != nil {
			return nil, err
		}
		if tzTok.kind != tokString {
			return nil, fmt.Errorf("%w at %d: expected a quoted timezone", errs.ErrTypeSyntax, tzTok.pos)
		}
		tzName = tzTok.text
		if err := p.expectRParen(tz); err != nil {
			return nil, err
		}

		return NewDateTime64(uint8(prec), tzName), nil
	default:
		return nil, fmt.Errorf("%w at %d: expected ',' or ')'", errs.ErrTypeSyntax, sep.pos)
	}
}

func (p *Parser) parseDecimal(tz *tokenizer, hasArgs bool) (*Type, error) {
	if !hasArgs {
		return nil, fmt.Errorf("%w: Decimal requires (precision, scale)", errs.ErrTypeSyntax)
	}

	precTok, err := tz.next()
	if err != nil {
		return nil, err
	}
	if precTok.kind != tokNumber {
		return nil, fmt.Errorf("%w at %d: expected precision", errs.ErrTypeSyntax, precTok.pos)
	}

	commaTok, err := tz.next()
	if err != nil {
		return nil, err
	}
	if commaTok.kind != tokComma {
		return nil, fmt.Errorf("%w at %d: expected ','", errs.ErrTypeSyntax, commaTok.pos)
	}

	scaleTok, err := tz.next()
	if err != nil {
		return nil, err
	}
	if scaleTok.kind != tokNumber {
		return nil, fmt.Errorf("%w at %d: expected scale", errs.ErrTypeSyntax, scaleTok.pos)
	}

	if err := p.expectRParen(tz); err != nil {
		return nil, err
	}

	return buildDecimal(precTok.text, scaleTok.text)
}

func (p *Parser) parseFixedDecimal(tz *tokenizer, hasArgs bool, name string, pos int) (*Type, error) {
	var fixedPrecision uint8
	switch name {
	case "Decimal32":
		fixedPrecision = 9
	case "Decimal64":
		fixedPrecision = 18
	case "Decimal128":
		fixedPrecision = 38
	case "Decimal256":
		fixedPrecision = 76
	}

	if !hasArgs {
		return nil, fmt.Errorf("%w at %d: %s requires a scale argument", errs.ErrTypeSyntax, pos, name)
	}

	scaleTok, err := tz.next()
	if err != nil {
		return nil, err
	}
	if scaleTok.kind != tokNumber {
		return nil, fmt.Errorf("%w at %d: expected scale", errs.ErrTypeSyntax, scaleTok.pos)
	}

	if err := p.expectRParen(tz); err != nil {
		return nil, err
	}

	return buildDecimal(strconv.Itoa(int(fixedPrecision)), scaleTok.text)
}

func buildDecimal(precStr, scaleStr string) (*Type, error) {
	prec, err := strconv.ParseUint(precStr, 10, 8)
	if err != nil || prec < 1 || prec > 76 {
		return nil, fmt.Errorf("%w: precision %s out of [1,76]", errs.ErrDecimalOutOfRange, precStr)
	}

	scale, err := strconv.ParseUint(scaleStr, 10, 8)
	if err != nil || scale > prec {
		return nil, fmt.Errorf("%w: scale %s out of [0,%d]", errs.ErrDecimalOutOfRange, scaleStr, prec)
	}

	return NewDecimal(uint8(prec), uint8(scale)), nil
}

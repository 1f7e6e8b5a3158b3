package types

import (
	"fmt"
	"strings"

	"github.com/quackscience/duckdb-extension-clickhouse-native/errs"
)

type tokenKind uint8

const (
	tokIdent tokenKind = iota
	tokNumber
	tokString
	tokLParen
	tokRParen
	tokComma
	tokEquals
	tokEOF
)

type token struct {
	kind tokenKind
	text string // ident name, number literal, or unescaped string contents
	pos  int
}

// tokenizer splits a type expression into idents, numbers, quoted strings,
// and the punctuation '(', ')', ',', '='.
type tokenizer struct {
	src string
	pos int
}

func newTokenizer(src string) *tokenizer {
	return &tokenizer{src: src}
}

func (tz *tokenizer) syntaxError(msg string) error {
	return fmt.Errorf("%w at %d: %s", errs.ErrTypeSyntax, tz.pos, msg)
}

func (tz *tokenizer) skipSpace() {
	for tz.pos < len(tz.src) && (tz.src[tz.pos] == ' ' || tz.src[tz.pos] == '\t') {
		tz.pos++
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentCont(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// next returns the next token, or a tokEOF token at end of input.
func (tz *tokenizer) next() (token, error) {
	tz.skipSpace()

	if tz.pos >= len(tz.src) {
		return token{kind: tokEOF, pos: tz.pos}, nil
	}

	start := tz.pos
	c := tz.src[tz.pos]

	switch {
	case c == '(':
		tz.pos++
		return token{kind: tokLParen, pos: start}, nil
	case c == ')':
		tz.pos++
		return token{kind: tokRParen, pos: start}, nil
	case c == ',':
		tz.pos++
		return token{kind: tokComma, pos: start}, nil
	case c == '=':
		tz.pos++
		return token{kind: tokEquals, pos: start}, nil
	case c == '\'':
		return tz.scanString()
	case isDigit(c) || (c == '-' && tz.pos+1 < len(tz.src) && isDigit(tz.src[tz.pos+1])):
		return tz.scanNumber()
	case isIdentStart(c):
		return tz.scanIdent()
	default:
		return token{}, tz.syntaxError(fmt.Sprintf("unexpected character %q", c))
	}
}

func (tz *tokenizer) scanIdent() (token, error) {
	start := tz.pos
	for tz.pos < len(tz.src) && isIdentCont(tz.src[tz.pos]) {
		tz.pos++
	}

	return token{kind: tokIdent, text: tz.src[start:tz.pos], pos: start}, nil
}

func (tz *tokenizer) scanNumber() (token, error) {
	start := tz.pos
	if tz.src[tz.pos] == '-' {
		tz.pos++
	}
	for tz.pos < len(tz.src) && isDigit(tz.src[tz.pos]) {
		tz.pos++
	}

	return token{kind: tokNumber, text: tz.src[start:tz.pos], pos: start}, nil
}

// scanString scans a ClickHouse-escaped single-quoted string: \\ and \'
// are the only recognized escapes, matching ClickHouse's own enum/type
// literal grammar.
func (tz *tokenizer) scanString() (token, error) {
	start := tz.pos
	tz.pos++ // opening quote

	var b strings.Builder
	for {
		if tz.pos >= len(tz.src) {
			return token{}, tz.syntaxError("unterminated string literal")
		}

		c := tz.src[tz.pos]
		switch {
		case c == '\'':
			tz.pos++
			return token{kind: tokString, text: b.String(), pos: start}, nil
		case c == '\\' && tz.pos+1 < len(tz.src):
			next := tz.src[tz.pos+1]
			switch next {
			case '\\', '\'':
				b.WriteByte(next)
			default:
				b.WriteByte(c)
				b.WriteByte(next)
			}
			tz.pos += 2
		default:
			b.WriteByte(c)
			tz.pos++
		}
	}
}

package lexer

import (
	"fmt"
	"unicode/utf8"
)

// Kind classifies a token by its lexical shape.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindKeyword
	KindIdentifier
	KindOperator
	KindPunct
	// KindWord is only produced by the legacy grammar, for runs that mix
	// identifier and symbol characters (for example `x=5`).
	KindWord
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindKeyword:
		return "keyword"
	case KindIdentifier:
		return "identifier"
	case KindOperator:
		return "operator"
	case KindPunct:
		return "punct"
	case KindWord:
		return "word"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Position locates a byte offset in the source. Line and Column are 1-based;
// Column counts runes.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is an immutable lexical unit. Text is the exact source slice, so
// string tokens keep their surrounding quotes.
type Token struct {
	Kind Kind     `json:"kind"`
	Text string   `json:"text"`
	Pos  Position `json:"pos"`
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q at %s", t.Kind, t.Text, t.Pos)
}

// End returns the position just past the token.
func (t Token) End() Position {
	end := t.Pos
	for _, r := range t.Text {
		end.Offset += utf8.RuneLen(r)
		if r == '\n' {
			end.Line++
			end.Column = 1
			continue
		}
		end.Column++
	}
	return end
}

// Texts returns the token texts in order.
func Texts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Text
	}
	return out
}

const (
	KeywordLet   = "let"
	KeywordPrint = "print"
)

func isKeyword(text string) bool {
	return text == KeywordLet || text == KeywordPrint
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }

func isOperator(c byte) bool { return c == '+' || c == '-' || c == '*' || c == '/' }

func isPunct(c byte) bool { return c == '(' || c == ')' || c == '=' || c == ';' }

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

// IsIdentifier reports whether text is a whole identifier: a letter or
// underscore followed by letters, digits, or underscores.
func IsIdentifier(text string) bool {
	if text == "" || !isIdentStart(text[0]) {
		return false
	}
	for i := 1; i < len(text); i++ {
		if !isIdentPart(text[i]) {
			return false
		}
	}
	return true
}

// IsNumber reports whether text is a non-empty run of ASCII digits.
func IsNumber(text string) bool {
	if text == "" {
		return false
	}
	for i := 0; i < len(text); i++ {
		if !isDigit(text[i]) {
			return false
		}
	}
	return true
}

// IsQuoted reports whether text is a complete double-quoted string token.
func IsQuoted(text string) bool {
	return len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"'
}

// locator converts monotonically increasing byte offsets into positions.
type locator struct {
	src  string
	off  int
	line int
	col  int
}

func newLocator(src string) *locator {
	return &locator{src: src, line: 1, col: 1}
}

func (l *locator) at(offset int) Position {
	if offset < l.off {
		l.off, l.line, l.col = 0, 1, 1
	}
	for l.off < offset && l.off < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.off:])
		if r == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.off += size
	}
	return Position{Offset: offset, Line: l.line, Column: l.col}
}

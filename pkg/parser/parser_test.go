package parser_test

import (
	"errors"
	"strings"
	"testing"

	"ep/interpreter-go/pkg/ast"
	"ep/interpreter-go/pkg/lexer"
	"ep/interpreter-go/pkg/parser"
)

func mustParse(t *testing.T, src string, opts ...lexer.Option) *ast.Program {
	t.Helper()
	program, err := parser.ParseSource(src, opts...)
	if err != nil {
		t.Fatalf("ParseSource(%q) returned error: %v", src, err)
	}
	if program == nil {
		t.Fatalf("ParseSource(%q) returned nil program", src)
	}
	return program
}

func formatBody(program *ast.Program) []string {
	out := make([]string, len(program.Body))
	for i, node := range program.Body {
		out[i] = ast.Format(node)
	}
	return out
}

func expectParseError(t *testing.T, src string, kind parser.ErrorKind, opts ...lexer.Option) *parser.ParseError {
	t.Helper()
	program, err := parser.ParseSource(src, opts...)
	if err == nil {
		t.Fatalf("ParseSource(%q) expected error, got %v", src, formatBody(program))
	}
	if program != nil {
		t.Fatalf("ParseSource(%q) returned partial program alongside error", src)
	}
	var parseErr *parser.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("ParseSource(%q) expected *ParseError, got %T (%v)", src, err, err)
	}
	if parseErr.Kind != kind {
		t.Fatalf("ParseSource(%q) error kind = %s, want %s (%v)", src, parseErr.Kind, kind, err)
	}
	return parseErr
}

func TestParsePrefixForms(t *testing.T) {
	cases := []struct {
		src  string
		want []string
	}{
		{"+ 1 2", []string{"(+ 1 2)"}},
		{"* + 1 2 3", []string{"(* (+ 1 2) 3)"}},
		{"- 10 / 6 3", []string{"(- 10 (/ 6 3))"}},
		{"( + 1 2 )", []string{"(+ 1 2)"}},
		{"+ (1) ((2))", []string{"(+ 1 2)"}},
		{"let x = 5", []string{"(let x 5)"}},
		{"let x = 5 print x", []string{"(let x 5)", "(print x)"}},
		{"let x = 5 ; print x ;", []string{"(let x 5)", "(print x)"}},
		{`print "hello world"`, []string{`(print "hello world")`}},
		{`print ""`, []string{`(print "")`}},
		{"print let y = 2", []string{"(print (let y 2))"}},
		{"x y z", []string{"x", "y", "z"}},
		{"", []string{}},
		{";;", []string{}},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			got := formatBody(mustParse(t, tc.src))
			if strings.Join(got, "|") != strings.Join(tc.want, "|") {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestParseNodeShapes(t *testing.T) {
	program := mustParse(t, `let total = + count "s"`)
	if len(program.Body) != 1 {
		t.Fatalf("expected one statement, got %d", len(program.Body))
	}
	assign, ok := program.Body[0].(*ast.Assignment)
	if !ok {
		t.Fatalf("expected *ast.Assignment, got %T", program.Body[0])
	}
	if assign.Name != "total" {
		t.Fatalf("expected name total, got %q", assign.Name)
	}
	bin, ok := assign.Value.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("expected *ast.BinaryExpression, got %T", assign.Value)
	}
	if bin.Operator != ast.OpAdd {
		t.Fatalf("expected operator +, got %q", bin.Operator)
	}
	if v, ok := bin.Left.(*ast.Variable); !ok || v.Name != "count" {
		t.Fatalf("expected left operand variable count, got %#v", bin.Left)
	}
	lit, ok := bin.Right.(*ast.Literal)
	if !ok || lit.Kind != ast.LiteralString || lit.Text != "s" {
		t.Fatalf("expected right operand string literal s, got %#v", bin.Right)
	}
}

func TestParseLargeNumber(t *testing.T) {
	program := mustParse(t, "123456789012345678901234567890")
	lit, ok := program.Body[0].(*ast.Literal)
	if !ok || lit.Kind != ast.LiteralNumber {
		t.Fatalf("expected number literal, got %#v", program.Body[0])
	}
	if lit.Number.String() != "123456789012345678901234567890" {
		t.Fatalf("unexpected number %s", lit.Number)
	}
}

func TestParseSpans(t *testing.T) {
	program := mustParse(t, "let x = + 1 2\nprint x")
	assign := program.Body[0].(*ast.Assignment)
	want := ast.Span{Start: ast.Position{Line: 1, Column: 1}, End: ast.Position{Line: 1, Column: 14}}
	if assign.Span() != want {
		t.Fatalf("assignment span = %+v, want %+v", assign.Span(), want)
	}
	bin := assign.Value.(*ast.BinaryExpression)
	want = ast.Span{Start: ast.Position{Line: 1, Column: 9}, End: ast.Position{Line: 1, Column: 14}}
	if bin.Span() != want {
		t.Fatalf("binary span = %+v, want %+v", bin.Span(), want)
	}
	display := program.Body[1].(*ast.Print)
	want = ast.Span{Start: ast.Position{Line: 2, Column: 1}, End: ast.Position{Line: 2, Column: 8}}
	if display.Span() != want {
		t.Fatalf("print span = %+v, want %+v", display.Span(), want)
	}
}

func TestParseMissingEquals(t *testing.T) {
	err := expectParseError(t, "let x 5", parser.ErrorKindExpectedToken)
	if err.Token != "5" {
		t.Fatalf("expected offending token 5, got %q", err.Token)
	}
	if !strings.Contains(err.Error(), "expected '='") {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if err.Location.Line != 1 || err.Location.Column != 7 {
		t.Fatalf("unexpected location %+v", err.Location)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		src   string
		kind  parser.ErrorKind
		token string
	}{
		{"+ 1", parser.ErrorKindUnexpectedEOF, ""},
		{"let", parser.ErrorKindUnexpectedEOF, ""},
		{"let x", parser.ErrorKindUnexpectedEOF, ""},
		{"let x =", parser.ErrorKindUnexpectedEOF, ""},
		{"print", parser.ErrorKindUnexpectedEOF, ""},
		{"(1", parser.ErrorKindUnexpectedEOF, ""},
		{"( 1 2 )", parser.ErrorKindExpectedToken, "2"},
		{")", parser.ErrorKindUnexpectedToken, ")"},
		{"= 1", parser.ErrorKindUnexpectedToken, "="},
		{"+ 1 ; 2", parser.ErrorKindUnexpectedToken, ";"},
		{"let 5 = 3", parser.ErrorKindInvalidName, "5"},
		{"let print = 3", parser.ErrorKindInvalidName, "print"},
		{`let "x" = 3`, parser.ErrorKindInvalidName, `"x"`},
	}
	for _, tc := range cases {
		t.Run(tc.src, func(t *testing.T) {
			err := expectParseError(t, tc.src, tc.kind)
			if err.Token != tc.token {
				t.Fatalf("offending token = %q, want %q", err.Token, tc.token)
			}
		})
	}
}

func TestUnexpectedEOFLocation(t *testing.T) {
	err := expectParseError(t, "let x =", parser.ErrorKindUnexpectedEOF)
	if err.Location.Line != 1 || err.Location.Column != 8 {
		t.Fatalf("unexpected location %+v", err.Location)
	}
	if !strings.Contains(err.Error(), "unexpected end of input") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func TestParseLegacyTokens(t *testing.T) {
	legacy := lexer.WithMode(lexer.ModeLegacy)

	program := mustParse(t, "let x = 5 ; print x", legacy)
	if got := formatBody(program); strings.Join(got, "|") != "(let x 5)|(print x)" {
		t.Fatalf("unexpected legacy program %v", got)
	}

	// Abutting tokens stay fused under the legacy lexer.
	expectParseError(t, "let x=5", parser.ErrorKindInvalidName, legacy)
	expectParseError(t, "(+ 1 2)", parser.ErrorKindUnexpectedToken, legacy)
}

func TestLexerErrorsPassThrough(t *testing.T) {
	_, err := parser.ParseSource("let x = 5 $")
	var gap *lexer.GapError
	if !errors.As(err, &gap) {
		t.Fatalf("expected *lexer.GapError, got %T (%v)", err, err)
	}
}

func TestParseTokensDirectly(t *testing.T) {
	tokens := []lexer.Token{
		{Kind: lexer.KindKeyword, Text: "print"},
		{Kind: lexer.KindOperator, Text: "*"},
		{Kind: lexer.KindNumber, Text: "6"},
		{Kind: lexer.KindNumber, Text: "7"},
	}
	program, err := parser.New(tokens).ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram returned error: %v", err)
	}
	if got := ast.Format(program.Body[0]); got != "(print (* 6 7))" {
		t.Fatalf("unexpected program %s", got)
	}
}

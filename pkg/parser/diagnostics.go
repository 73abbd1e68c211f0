package parser

import (
	"fmt"

	"ep/interpreter-go/pkg/lexer"
)

type ErrorKind string

const (
	ErrorKindExpectedToken   ErrorKind = "expected_token"
	ErrorKindUnexpectedToken ErrorKind = "unexpected_token"
	ErrorKindUnexpectedEOF   ErrorKind = "unexpected_eof"
	ErrorKindInvalidName     ErrorKind = "invalid_name"
)

// SourceLocation captures a source span for parser diagnostics.
type SourceLocation struct {
	Line      int
	Column    int
	EndLine   int
	EndColumn int
}

// ParseError includes a message plus a best-effort source location. Token is
// the offending token text, empty when input ran out.
type ParseError struct {
	Kind     ErrorKind
	Message  string
	Token    string
	Location SourceLocation
}

func (e *ParseError) Error() string {
	if e.Location.Line == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Location.Line, e.Location.Column)
}

func locationForToken(tok lexer.Token) SourceLocation {
	end := tok.End()
	return SourceLocation{
		Line:      tok.Pos.Line,
		Column:    tok.Pos.Column,
		EndLine:   end.Line,
		EndColumn: end.Column,
	}
}

func expectedToken(want string, got lexer.Token, context string) *ParseError {
	return &ParseError{
		Kind:     ErrorKindExpectedToken,
		Message:  fmt.Sprintf("parser: expected '%s' %s, got %q", want, context, got.Text),
		Token:    got.Text,
		Location: locationForToken(got),
	}
}

func unexpectedToken(got lexer.Token) *ParseError {
	return &ParseError{
		Kind:     ErrorKindUnexpectedToken,
		Message:  fmt.Sprintf("parser: unexpected token %q", got.Text),
		Token:    got.Text,
		Location: locationForToken(got),
	}
}

func invalidName(got lexer.Token) *ParseError {
	return &ParseError{
		Kind:     ErrorKindInvalidName,
		Message:  fmt.Sprintf("parser: invalid variable name %q", got.Text),
		Token:    got.Text,
		Location: locationForToken(got),
	}
}

func formatEOFMessage(expected string) string {
	return fmt.Sprintf("parser: unexpected end of input, expected %s", expected)
}

package interpreter

import (
	"fmt"

	"ep/interpreter-go/pkg/ast"
	"ep/interpreter-go/pkg/runtime"
)

// UnboundVariableError reports a read of a name no assignment has bound yet.
type UnboundVariableError struct {
	Name string
	Span ast.Span
}

func (e *UnboundVariableError) Error() string {
	return withLocation(fmt.Sprintf("Undefined variable '%s'", e.Name), e.Span)
}

type UnknownOperatorError struct {
	Operator ast.Operator
	Span     ast.Span
}

func (e *UnknownOperatorError) Error() string {
	return withLocation(fmt.Sprintf("unknown operator %q", string(e.Operator)), e.Span)
}

type DivisionByZeroError struct {
	Span ast.Span
}

func (e *DivisionByZeroError) Error() string {
	return withLocation("division by zero", e.Span)
}

// TypeMismatchError reports operands an operator cannot combine.
type TypeMismatchError struct {
	Operator    ast.Operator
	Left, Right runtime.Kind
	Span        ast.Span
}

func (e *TypeMismatchError) Error() string {
	return withLocation(fmt.Sprintf("unsupported operand types for %s: %s and %s", e.Operator, e.Left, e.Right), e.Span)
}

func withLocation(msg string, span ast.Span) string {
	if span.Start.Line == 0 {
		return msg
	}
	return fmt.Sprintf("%s at %d:%d", msg, span.Start.Line, span.Start.Column)
}

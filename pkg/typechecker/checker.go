// Package typechecker statically inspects a parsed program before it runs.
// With no control flow in the language, walking nodes depth-first and left
// before right visits them in exactly the order the interpreter evaluates
// them, so a read is reported unbound precisely when evaluation would fail.
package typechecker

import (
	"fmt"

	"ep/interpreter-go/pkg/ast"
)

type Checker struct {
	env *Environment
}

type Diagnostic struct {
	Message string
	Node    ast.Node
	Span    ast.Span
}

func (d Diagnostic) String() string {
	if d.Span.Start.Line == 0 {
		return d.Message
	}
	return fmt.Sprintf("%d:%d: %s", d.Span.Start.Line, d.Span.Start.Column, d.Message)
}

// New returns a checker instance.
func New() *Checker {
	return &Checker{env: NewEnvironment()}
}

// Check is shorthand for New().CheckProgram(program), treating a nil program
// as empty.
func Check(program *ast.Program) []Diagnostic {
	if program == nil {
		return nil
	}
	diags, _ := New().CheckProgram(program)
	return diags
}

// CheckProgram returns diagnostics in source order.
func (c *Checker) CheckProgram(program *ast.Program) ([]Diagnostic, error) {
	if program == nil {
		return nil, fmt.Errorf("typechecker: program is nil")
	}
	c.env = NewEnvironment()
	var diagnostics []Diagnostic
	for _, node := range program.Body {
		diags, _ := c.checkExpression(node)
		diagnostics = append(diagnostics, diags...)
	}
	return diagnostics, nil
}

func (c *Checker) checkExpression(node ast.Node) ([]Diagnostic, Type) {
	switch n := node.(type) {
	case *ast.Literal:
		if n.Kind == ast.LiteralString {
			return nil, stringType
		}
		return nil, numberType
	case *ast.Variable:
		if typ, ok := c.env.Lookup(n.Name); ok {
			return nil, typ
		}
		return []Diagnostic{diagnostic(n, "typechecker: unbound variable '%s'", n.Name)}, UnknownType{}
	case *ast.Assignment:
		diags, typ := c.checkExpression(n.Value)
		c.env.Define(n.Name, typ)
		return diags, typ
	case *ast.Print:
		diags, _ := c.checkExpression(n.Value)
		return diags, nilType
	case *ast.BinaryExpression:
		return c.checkBinaryExpression(n)
	default:
		return []Diagnostic{{Message: fmt.Sprintf("typechecker: unsupported node %T", node)}}, UnknownType{}
	}
}

func diagnostic(node ast.Node, format string, args ...any) Diagnostic {
	return Diagnostic{Message: fmt.Sprintf(format, args...), Node: node, Span: node.Span()}
}

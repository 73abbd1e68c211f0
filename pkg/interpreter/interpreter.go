// Package interpreter evaluates ep programs by walking the AST against a
// single flat environment. Print writes to the configured output; every other
// node is side-effect free apart from Assignment.
package interpreter

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"ep/interpreter-go/pkg/ast"
	"ep/interpreter-go/pkg/runtime"
)

// Interpreter is not safe for concurrent use.
type Interpreter struct {
	env    *runtime.Environment
	out    io.Writer
	logger *slog.Logger
}

type Option func(*Interpreter)

// WithOutput redirects print output (os.Stdout by default).
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		if w != nil {
			i.out = w
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(i *Interpreter) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// New returns an interpreter with an empty environment.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		env:    runtime.NewEnvironment(),
		out:    os.Stdout,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Environment returns the interpreter's environment.
func (i *Interpreter) Environment() *runtime.Environment {
	return i.env
}

// Run evaluates the program's statements in order and stops at the first
// error. Output already written by earlier statements stands.
func (i *Interpreter) Run(program *ast.Program) error {
	if program == nil {
		return nil
	}
	for idx, node := range program.Body {
		i.logger.Debug("evaluate statement", "index", idx, "node", node.NodeType(), "span", spanString(node.Span()))
		if _, err := i.Evaluate(node); err != nil {
			i.logger.Debug("statement failed", "index", idx, "error", err)
			return err
		}
	}
	return nil
}

// Evaluate computes the value of a single node.
func (i *Interpreter) Evaluate(node ast.Node) (runtime.Value, error) {
	switch n := node.(type) {
	case *ast.Literal:
		return evaluateLiteral(n)
	case *ast.Variable:
		val, ok := i.env.Lookup(n.Name)
		if !ok {
			return nil, &UnboundVariableError{Name: n.Name, Span: n.Span()}
		}
		return val, nil
	case *ast.Assignment:
		return i.evaluateAssignment(n)
	case *ast.Print:
		return i.evaluatePrint(n)
	case *ast.BinaryExpression:
		return i.evaluateBinaryExpression(n)
	case nil:
		return nil, fmt.Errorf("interpreter: nil node")
	default:
		return nil, fmt.Errorf("interpreter: unsupported node %T", node)
	}
}

func evaluateLiteral(lit *ast.Literal) (runtime.Value, error) {
	switch lit.Kind {
	case ast.LiteralString:
		return runtime.StringValue{Val: lit.Text}, nil
	case ast.LiteralNumber:
		if lit.Number == nil {
			return nil, fmt.Errorf("interpreter: number literal without value")
		}
		return runtime.IntegerValue{Val: runtime.CloneBigInt(lit.Number)}, nil
	default:
		return nil, fmt.Errorf("interpreter: unknown literal kind %q", lit.Kind)
	}
}

func (i *Interpreter) evaluateAssignment(assign *ast.Assignment) (runtime.Value, error) {
	val, err := i.Evaluate(assign.Value)
	if err != nil {
		return nil, err
	}
	i.env.Define(assign.Name, val)
	return val, nil
}

func (i *Interpreter) evaluatePrint(stmt *ast.Print) (runtime.Value, error) {
	val, err := i.Evaluate(stmt.Value)
	if err != nil {
		return nil, err
	}
	if _, err := fmt.Fprintln(i.out, FormatValue(val)); err != nil {
		return nil, fmt.Errorf("print: %w", err)
	}
	return runtime.NilValue{}, nil
}

func spanString(span ast.Span) string {
	return fmt.Sprintf("%d:%d", span.Start.Line, span.Start.Column)
}

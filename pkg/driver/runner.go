package driver

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"ep/interpreter-go/pkg/ast"
	"ep/interpreter-go/pkg/interpreter"
	"ep/interpreter-go/pkg/lexer"
	"ep/interpreter-go/pkg/parser"
	"ep/interpreter-go/pkg/typechecker"
)

// ReadError reports a source file that could not be read. Nothing is
// tokenized or evaluated in that case.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// CheckError carries static diagnostics that stopped a run before evaluation.
type CheckError struct {
	Diagnostics []typechecker.Diagnostic
}

func (e *CheckError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "static check reported %d issue(s):", len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		b.WriteString("\n- ")
		b.WriteString(d.String())
	}
	return b.String()
}

// Runner executes the source pipeline (tokenize, parse, optional static
// check, evaluate) under one configuration.
type Runner struct {
	Config *Config
	Stdout io.Writer
	Logger *slog.Logger
}

// NewRunner fills unset fields with defaults.
func NewRunner(cfg *Config, stdout io.Writer, logger *slog.Logger) *Runner {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{Config: cfg, Stdout: stdout, Logger: logger}
}

// ReadSource loads path, wrapping failures in *ReadError.
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &ReadError{Path: path, Err: err}
	}
	return string(data), nil
}

func (r *Runner) Tokenize(src string) ([]lexer.Token, error) {
	return lexer.New(r.Config.LexerOptions(r.Logger)...).Tokenize(src)
}

func (r *Runner) Parse(src string) (*ast.Program, error) {
	tokens, err := r.Tokenize(src)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("tokenized", "tokens", len(tokens), "mode", r.Config.Lexer.Mode)
	program, err := parser.Parse(tokens)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("parsed", "statements", len(program.Body))
	return program, nil
}

// Run parses src and evaluates it. With Config.Check set, diagnostics abort
// the run before any output is produced.
func (r *Runner) Run(src string) error {
	program, err := r.Parse(src)
	if err != nil {
		return err
	}
	if r.Config.Check {
		if diags := typechecker.Check(program); len(diags) > 0 {
			return &CheckError{Diagnostics: diags}
		}
		r.Logger.Debug("static check passed")
	}
	interp := interpreter.New(interpreter.WithOutput(r.Stdout), interpreter.WithLogger(r.Logger))
	return interp.Run(program)
}

func (r *Runner) RunFile(path string) error {
	src, err := ReadSource(path)
	if err != nil {
		return err
	}
	r.Logger.Debug("read source", "path", path, "bytes", len(src))
	return r.Run(src)
}

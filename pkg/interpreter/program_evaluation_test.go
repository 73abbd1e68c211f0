package interpreter_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ep/interpreter-go/pkg/interpreter"
	"ep/interpreter-go/pkg/lexer"
	"ep/interpreter-go/pkg/parser"
)

func runSource(t *testing.T, src string, opts ...lexer.Option) (string, error) {
	t.Helper()
	program, err := parser.ParseSource(src, opts...)
	require.NoError(t, err)
	var out bytes.Buffer
	err = interpreter.New(interpreter.WithOutput(&out)).Run(program)
	return out.String(), err
}

func TestProgramEvaluation(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"prefix sum", "print + 1 2", "3\n"},
		{"nested prefix", "print * + 1 2 3", "9\n"},
		{"assign then print", "let x = 10\nprint x", "10\n"},
		{"terminators", "let x = 5 ; print x ;", "5\n"},
		{"grouping", "print (- (* 4 4) 6)", "10\n"},
		{"string concat", `let name = "ep" print + "hello " name`, "hello ep\n"},
		{"fractional", "print / 1 4", "0.25\n"},
		{"print of assignment", "print let y = 8", "8\n"},
		{"print of print", "print print 1", "1\nnil\n"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := runSource(t, tc.src)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestProgramEvaluationLegacyLexer(t *testing.T) {
	out, err := runSource(t, "let x = 5 ; print * x x", lexer.WithMode(lexer.ModeLegacy))
	require.NoError(t, err)
	assert.Equal(t, "25\n", out)
}

func TestProgramUnboundVariable(t *testing.T) {
	out, err := runSource(t, "print 1\nprint y")
	var unbound *interpreter.UnboundVariableError
	require.True(t, errors.As(err, &unbound), "expected UnboundVariableError, got %v", err)
	assert.Equal(t, "y", unbound.Name)
	assert.Equal(t, "Undefined variable 'y' at 2:7", err.Error())
	assert.Equal(t, "1\n", out)
}

func TestProgramDivisionByZeroLocation(t *testing.T) {
	_, err := runSource(t, "let z = 0\nprint / 10 z")
	var divErr *interpreter.DivisionByZeroError
	require.True(t, errors.As(err, &divErr))
	assert.Equal(t, "division by zero at 2:7", err.Error())
}

package ast

import "math/big"

// Short constructors for building trees by hand, mostly in tests.

func Num(value int64) *Literal { return NewNumberLiteral(big.NewInt(value)) }

func Str(value string) *Literal { return NewStringLiteral(value) }

func Var(name string) *Variable { return NewVariable(name) }

func Let(name string, value Node) *Assignment { return NewAssignment(name, value) }

func Display(value Node) *Print { return NewPrint(value) }

func Bin(op string, left, right Node) *BinaryExpression {
	return NewBinaryExpression(Operator(op), left, right)
}

func Prog(body ...Node) *Program { return NewProgram(body) }

package interpreter

import (
	"math/big"

	"ep/interpreter-go/pkg/ast"
	"ep/interpreter-go/pkg/runtime"
)

// Left is evaluated completely before right.
func (i *Interpreter) evaluateBinaryExpression(expr *ast.BinaryExpression) (runtime.Value, error) {
	leftVal, err := i.Evaluate(expr.Left)
	if err != nil {
		return nil, err
	}
	rightVal, err := i.Evaluate(expr.Right)
	if err != nil {
		return nil, err
	}
	return applyOperator(expr.Operator, leftVal, rightVal, expr.Span())
}

func applyOperator(op ast.Operator, left, right runtime.Value, span ast.Span) (runtime.Value, error) {
	switch op {
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv:
	default:
		return nil, &UnknownOperatorError{Operator: op, Span: span}
	}

	mismatch := &TypeMismatchError{Operator: op, Left: runtime.KindOf(left), Right: runtime.KindOf(right), Span: span}
	if mismatch.Left == runtime.KindNil || mismatch.Right == runtime.KindNil {
		return nil, mismatch
	}
	if op == ast.OpAdd && (mismatch.Left == runtime.KindString || mismatch.Right == runtime.KindString) {
		return runtime.StringValue{Val: FormatValue(left) + FormatValue(right)}, nil
	}
	if !runtime.IsNumeric(left) || !runtime.IsNumeric(right) {
		return nil, mismatch
	}

	lv, lok := left.(runtime.IntegerValue)
	rv, rok := right.(runtime.IntegerValue)
	if lok && rok {
		return evaluateIntegerArithmetic(op, lv.Val, rv.Val, span)
	}
	return evaluateFloatArithmetic(op, toFloat(left), toFloat(right), span)
}

func evaluateIntegerArithmetic(op ast.Operator, l, r *big.Int, span ast.Span) (runtime.Value, error) {
	result := new(big.Int)
	switch op {
	case ast.OpAdd:
		result.Add(l, r)
	case ast.OpSub:
		result.Sub(l, r)
	case ast.OpMul:
		result.Mul(l, r)
	case ast.OpDiv:
		if r.Sign() == 0 {
			return nil, &DivisionByZeroError{Span: span}
		}
		rem := new(big.Int)
		result.QuoRem(l, r, rem)
		if rem.Sign() != 0 {
			f, _ := new(big.Rat).SetFrac(l, r).Float64()
			return runtime.FloatValue{Val: f}, nil
		}
	}
	return runtime.IntegerValue{Val: result}, nil
}

func evaluateFloatArithmetic(op ast.Operator, l, r float64, span ast.Span) (runtime.Value, error) {
	var val float64
	switch op {
	case ast.OpAdd:
		val = l + r
	case ast.OpSub:
		val = l - r
	case ast.OpMul:
		val = l * r
	case ast.OpDiv:
		if r == 0 {
			return nil, &DivisionByZeroError{Span: span}
		}
		val = l / r
	}
	return runtime.FloatValue{Val: val}, nil
}

func toFloat(v runtime.Value) float64 {
	switch n := v.(type) {
	case runtime.FloatValue:
		return n.Val
	case runtime.IntegerValue:
		f, _ := new(big.Float).SetInt(n.Val).Float64()
		return f
	default:
		return 0
	}
}

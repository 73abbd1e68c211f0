package typechecker

import "ep/interpreter-go/pkg/ast"

func (c *Checker) checkBinaryExpression(expr *ast.BinaryExpression) ([]Diagnostic, Type) {
	leftDiags, leftType := c.checkExpression(expr.Left)
	rightDiags, rightType := c.checkExpression(expr.Right)
	var diags []Diagnostic
	diags = append(diags, leftDiags...)
	diags = append(diags, rightDiags...)

	if _, ok := ast.ParseOperator(string(expr.Operator)); !ok {
		diags = append(diags, diagnostic(expr, "typechecker: unsupported binary operator %q", string(expr.Operator)))
		return diags, UnknownType{}
	}

	for _, operand := range []Type{leftType, rightType} {
		if isPrimitive(operand, PrimitiveNil) {
			diags = append(diags, diagnostic(expr, "typechecker: '%s' operand is nil", expr.Operator))
			return diags, UnknownType{}
		}
	}

	if expr.Operator == ast.OpAdd {
		switch {
		case isPrimitive(leftType, PrimitiveString) || isPrimitive(rightType, PrimitiveString):
			return diags, stringType
		case isUnknownType(leftType) || isUnknownType(rightType):
			return diags, UnknownType{}
		default:
			return diags, numberType
		}
	}

	for _, operand := range []Type{leftType, rightType} {
		if isPrimitive(operand, PrimitiveString) {
			diags = append(diags, diagnostic(expr, "typechecker: '%s' requires numeric operands (got %s)", expr.Operator, typeName(operand)))
			return diags, UnknownType{}
		}
	}

	if expr.Operator == ast.OpDiv {
		if lit, ok := expr.Right.(*ast.Literal); ok && lit.Kind == ast.LiteralNumber && lit.Number != nil && lit.Number.Sign() == 0 {
			diags = append(diags, diagnostic(expr, "typechecker: division by literal zero"))
		}
	}
	if isUnknownType(leftType) || isUnknownType(rightType) {
		return diags, UnknownType{}
	}
	return diags, numberType
}

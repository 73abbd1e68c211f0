package ast

import (
	"math/big"
	"strings"
)

type NodeType string

const (
	NodeLiteral          NodeType = "Literal"
	NodeVariable         NodeType = "Variable"
	NodeAssignment       NodeType = "Assignment"
	NodePrint            NodeType = "Print"
	NodeBinaryExpression NodeType = "BinaryExpression"
)

// Node is implemented only by the five node kinds in this package, so a type
// switch over them is exhaustive.
type Node interface {
	NodeType() NodeType
	Span() Span
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
	Loc  Span     `json:"span"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (n nodeImpl) Span() Span         { return n.Loc }
func (nodeImpl) isNode()              {}

func (n *nodeImpl) setSpan(span Span) { n.Loc = span }

// Program is the ordered forest of top-level statements.
type Program struct {
	Body []Node `json:"body"`
}

func NewProgram(body []Node) *Program {
	if body == nil {
		body = []Node{}
	}
	return &Program{Body: body}
}

// Literals

type LiteralKind string

const (
	LiteralNumber LiteralKind = "number"
	LiteralString LiteralKind = "string"
)

// Literal is a constant. Number is set for number literals, Text for string
// literals (without quotes).
type Literal struct {
	nodeImpl

	Kind   LiteralKind `json:"kind"`
	Number *big.Int    `json:"number,omitempty"`
	Text   string      `json:"text,omitempty"`
}

func NewNumberLiteral(value *big.Int) *Literal {
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral), Kind: LiteralNumber, Number: value}
}

func NewStringLiteral(value string) *Literal {
	return &Literal{nodeImpl: newNodeImpl(NodeLiteral), Kind: LiteralString, Text: value}
}

// Variable references an environment slot.

type Variable struct {
	nodeImpl

	Name string `json:"name"`
}

func NewVariable(name string) *Variable {
	return &Variable{nodeImpl: newNodeImpl(NodeVariable), Name: name}
}

// Assignment binds or rebinds Name to the value of Value.
type Assignment struct {
	nodeImpl

	Name  string `json:"name"`
	Value Node   `json:"value"`
}

func NewAssignment(name string, value Node) *Assignment {
	return &Assignment{nodeImpl: newNodeImpl(NodeAssignment), Name: name, Value: value}
}

type Print struct {
	nodeImpl

	Value Node `json:"value"`
}

func NewPrint(value Node) *Print {
	return &Print{nodeImpl: newNodeImpl(NodePrint), Value: value}
}

// Operators

type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "*"
	OpDiv Operator = "/"
)

// ParseOperator maps token text onto a binary operator.
func ParseOperator(text string) (Operator, bool) {
	switch op := Operator(text); op {
	case OpAdd, OpSub, OpMul, OpDiv:
		return op, true
	default:
		return "", false
	}
}

// BinaryExpression is a prefix-form operation: the operator token precedes
// both operands.
type BinaryExpression struct {
	nodeImpl

	Operator Operator `json:"operator"`
	Left     Node     `json:"left"`
	Right    Node     `json:"right"`
}

func NewBinaryExpression(operator Operator, left, right Node) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

// Format renders node back into prefix source form, parenthesizing compound
// nodes: `(+ 1 (* x 2))`, `(let x 5)`, `(print "hi")`.
func Format(node Node) string {
	var b strings.Builder
	format(&b, node)
	return b.String()
}

func format(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case *Literal:
		if n.Kind == LiteralString {
			b.WriteByte('"')
			b.WriteString(n.Text)
			b.WriteByte('"')
			return
		}
		if n.Number == nil {
			b.WriteString("0")
			return
		}
		b.WriteString(n.Number.String())
	case *Variable:
		b.WriteString(n.Name)
	case *Assignment:
		b.WriteString("(let ")
		b.WriteString(n.Name)
		b.WriteByte(' ')
		format(b, n.Value)
		b.WriteByte(')')
	case *Print:
		b.WriteString("(print ")
		format(b, n.Value)
		b.WriteByte(')')
	case *BinaryExpression:
		b.WriteByte('(')
		b.WriteString(string(n.Operator))
		b.WriteByte(' ')
		format(b, n.Left)
		b.WriteByte(' ')
		format(b, n.Right)
		b.WriteByte(')')
	default:
		b.WriteString("<nil>")
	}
}

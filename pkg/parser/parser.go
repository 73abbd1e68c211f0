// Package parser builds an ast.Program from a token sequence. Expressions are
// written in prefix form: an operator token is followed by its left and right
// operands, so `* + 1 2 3` is (1 + 2) * 3 and no precedence rules apply.
package parser

import (
	"math/big"

	"ep/interpreter-go/pkg/ast"
	"ep/interpreter-go/pkg/lexer"
)

// Parser walks a token slice with a single forward cursor.
type Parser struct {
	tokens  []lexer.Token
	current int
}

func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse is shorthand for New(tokens).ParseProgram().
func Parse(tokens []lexer.Token) (*ast.Program, error) {
	return New(tokens).ParseProgram()
}

// ParseSource tokenizes src with a lexer built from opts and parses the result.
func ParseSource(src string, opts ...lexer.Option) (*ast.Program, error) {
	tokens, err := lexer.New(opts...).Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}

// ParseProgram parses statements until the tokens run out. A `;` between
// top-level statements is skipped. On error no partial program is returned.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	body := make([]ast.Node, 0)
	for !p.atEnd() {
		if p.peek().Text == ";" {
			p.current++
			continue
		}
		node, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		body = append(body, node)
	}
	return ast.NewProgram(body), nil
}

func (p *Parser) parseExpression() (ast.Node, error) {
	if p.atEnd() {
		return nil, p.unexpectedEOF("expression")
	}
	tok := p.peek()
	switch {
	case lexer.IsQuoted(tok.Text):
		p.current++
		lit := ast.NewStringLiteral(tok.Text[1 : len(tok.Text)-1])
		p.annotate(lit, tok)
		return lit, nil
	case tok.Text == lexer.KeywordLet:
		return p.parseAssignment()
	case tok.Text == lexer.KeywordPrint:
		return p.parsePrint()
	case lexer.IsNumber(tok.Text):
		p.current++
		value, _ := new(big.Int).SetString(tok.Text, 10)
		lit := ast.NewNumberLiteral(value)
		p.annotate(lit, tok)
		return lit, nil
	case lexer.IsIdentifier(tok.Text):
		p.current++
		variable := ast.NewVariable(tok.Text)
		p.annotate(variable, tok)
		return variable, nil
	case tok.Text == "(":
		return p.parseGroup()
	}
	if op, ok := ast.ParseOperator(tok.Text); ok {
		return p.parseBinary(op)
	}
	return nil, unexpectedToken(tok)
}

// let NAME = EXPR
func (p *Parser) parseAssignment() (ast.Node, error) {
	start := p.advance()
	if p.atEnd() {
		return nil, p.unexpectedEOF("variable name after 'let'")
	}
	name := p.advance()
	if !lexer.IsIdentifier(name.Text) || name.Text == lexer.KeywordLet || name.Text == lexer.KeywordPrint {
		return nil, invalidName(name)
	}
	if err := p.expect("=", "after variable name"); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	node := ast.NewAssignment(name.Text, value)
	p.annotate(node, start)
	return node, nil
}

func (p *Parser) parsePrint() (ast.Node, error) {
	start := p.advance()
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	node := ast.NewPrint(value)
	p.annotate(node, start)
	return node, nil
}

func (p *Parser) parseBinary(op ast.Operator) (ast.Node, error) {
	start := p.advance()
	left, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	right, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	node := ast.NewBinaryExpression(op, left, right)
	p.annotate(node, start)
	return node, nil
}

// Parentheses group a single expression and leave no node of their own.
func (p *Parser) parseGroup() (ast.Node, error) {
	p.advance()
	inner, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(")", "to close group"); err != nil {
		return nil, err
	}
	return inner, nil
}

func (p *Parser) expect(text, context string) error {
	if p.atEnd() {
		return p.unexpectedEOF("'" + text + "' " + context)
	}
	tok := p.peek()
	if tok.Text != text {
		return expectedToken(text, tok, context)
	}
	p.current++
	return nil
}

func (p *Parser) atEnd() bool { return p.current >= len(p.tokens) }

func (p *Parser) peek() lexer.Token { return p.tokens[p.current] }

func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.current]
	p.current++
	return tok
}

// annotate spans node from start to the end of the last consumed token.
func (p *Parser) annotate(node ast.Node, start lexer.Token) {
	end := start.End()
	if p.current > 0 {
		end = p.tokens[p.current-1].End()
	}
	ast.SetSpan(node, ast.Span{
		Start: ast.Position{Line: start.Pos.Line, Column: start.Pos.Column},
		End:   ast.Position{Line: end.Line, Column: end.Column},
	})
}

func (p *Parser) unexpectedEOF(expected string) *ParseError {
	err := &ParseError{Kind: ErrorKindUnexpectedEOF, Message: formatEOFMessage(expected)}
	if n := len(p.tokens); n > 0 {
		end := p.tokens[n-1].End()
		err.Location = SourceLocation{Line: end.Line, Column: end.Column, EndLine: end.Line, EndColumn: end.Column}
	}
	return err
}

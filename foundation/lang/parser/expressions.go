// File: expressions.go
// Title: Expression Parsing
// Description: Precedence ladder from logical or down to primary
//              expressions. Every binary level folds to the left, including
//              exponentiation; unary operators recurse to the right.
// Author: msto63
// Version: v0.2.1
// Created: 2025-02-14
// Modified: 2025-03-09
//
// Change History:
// - 2025-02-14 v0.1.0: Initial expression productions
// - 2025-03-02 v0.2.0: Boolean literals, calls on type keywords
// - 2025-03-09 v0.2.1: Nesting limit, reject out-of-range number literals

package parser

import (
	"errors"
	"strconv"

	"github.com/msto63/lumen/foundation/lang/ast"
	"github.com/msto63/lumen/foundation/lang/token"
)

var (
	equalityOperators       = []Pattern{Lexeme("=="), Lexeme("!=")}
	comparisonOperators     = []Pattern{Lexeme("<"), Lexeme(">"), Lexeme("<="), Lexeme(">=")}
	additiveOperators       = []Pattern{Lexeme("+"), Lexeme("-"), Lexeme("..")}
	multiplicativeOperators = []Pattern{Lexeme("*"), Lexeme("/"), Lexeme("//"), Lexeme("%")}
	unaryOperators          = []Pattern{Lexeme("not"), Lexeme("-"), Lexeme("#")}
	typeKeywords            = []Pattern{Lexeme("int"), Lexeme("num"), Lexeme("string"), Lexeme("bool")}
	nilKeywords             = []Pattern{Lexeme("nil"), Lexeme("null")}
	booleanKeywords         = []Pattern{Lexeme("true"), Lexeme("false")}
)

func (p *Parser) expression() (ast.Expr, error) {
	return p.or()
}

func (p *Parser) or() (ast.Expr, error) {
	return p.binary(p.and, Lexeme("or"))
}

func (p *Parser) and() (ast.Expr, error) {
	return p.binary(p.equality, Lexeme("and"))
}

func (p *Parser) equality() (ast.Expr, error) {
	return p.binary(p.comparison, equalityOperators...)
}

func (p *Parser) comparison() (ast.Expr, error) {
	return p.binary(p.additive, comparisonOperators...)
}

func (p *Parser) additive() (ast.Expr, error) {
	return p.binary(p.multiplicative, additiveOperators...)
}

func (p *Parser) multiplicative() (ast.Expr, error) {
	return p.binary(p.power, multiplicativeOperators...)
}

// power folds to the left: 2 ^ 3 ^ 2 is (2 ^ 3) ^ 2
func (p *Parser) power() (ast.Expr, error) {
	return p.binary(p.unary, Lexeme("^"))
}

// binary parses one left-folded precedence level
func (p *Parser) binary(operand func() (ast.Expr, error), operators ...Pattern) (ast.Expr, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.match(operators...)
		if !ok {
			return left, nil
		}
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{
			Operator: op.Lexeme,
			Left:     left,
			Right:    right,
			Pos:      left.Position(),
		}
	}
}

func (p *Parser) unary() (ast.Expr, error) {
	if !p.check(unaryOperators...) {
		return p.primary()
	}
	if err := p.nest(); err != nil {
		return nil, err
	}
	defer p.unnest()
	op := p.advance()
	operand, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpression{Operator: op.Lexeme, Operand: operand, Pos: op.Pos()}, nil
}

func (p *Parser) primary() (ast.Expr, error) {
	t := p.peek()
	switch {
	case t.Kind == token.Number:
		p.advance()
		value, err := strconv.ParseFloat(t.Lexeme, 64)
		if errors.Is(err, strconv.ErrRange) {
			return nil, &ParseError{Message: "Number literal out of range.", Token: t}
		}
		return &ast.NumberLiteral{Raw: t.Lexeme, Value: value, Pos: t.Pos()}, nil

	case t.Kind == token.String:
		p.advance()
		return &ast.StringLiteral{Value: unquote(t.Lexeme), Pos: t.Pos()}, nil

	case p.check(booleanKeywords...):
		p.advance()
		return &ast.BooleanLiteral{Value: t.Lexeme == "true", Pos: t.Pos()}, nil

	case p.check(nilKeywords...):
		p.advance()
		return &ast.NilLiteral{Raw: t.Lexeme, Pos: t.Pos()}, nil

	case t.Kind == token.Identifier, p.check(typeKeywords...):
		p.advance()
		return p.call(&ast.Identifier{Name: t.Lexeme, Pos: t.Pos()})

	case p.check(Lexeme("(")):
		if err := p.nest(); err != nil {
			return nil, err
		}
		defer p.unnest()
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(Lexeme(")"), "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return expr, nil
	}
	return nil, p.errorAtCurrent(unexpected(t))
}

// call parses an optional argument list after a name
func (p *Parser) call(callee *ast.Identifier) (ast.Expr, error) {
	if !p.check(Lexeme("(")) {
		return callee, nil
	}
	if err := p.nest(); err != nil {
		return nil, err
	}
	defer p.unnest()
	p.advance()
	var args []ast.Expr
	if !p.check(Lexeme(")")) {
		for {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if _, ok := p.match(Lexeme(",")); !ok {
				break
			}
		}
	}
	if _, err := p.consume(Lexeme(")"), "Expect ')' after arguments."); err != nil {
		return nil, err
	}
	return &ast.FunctionCall{Callee: callee, Args: args, Pos: callee.Pos}, nil
}

// unquote strips the delimiting quotes of a string lexeme
func unquote(lexeme string) string {
	if len(lexeme) >= 2 {
		return lexeme[1 : len(lexeme)-1]
	}
	return lexeme
}

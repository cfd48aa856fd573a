// File: statements.go
// Title: Statement Parsing
// Description: Statement dispatch on the current token and the productions
//              for declarations, control flow, blocks and expression
//              statements.
// Author: msto63
// Version: v0.2.1
// Created: 2025-02-14
// Modified: 2025-03-09
//
// Change History:
// - 2025-02-14 v0.1.0: Initial statement productions
// - 2025-03-02 v0.2.0: Comment passthrough at statement boundaries
// - 2025-03-09 v0.2.1: Blocks count toward the nesting limit

package parser

import (
	"github.com/msto63/lumen/foundation/lang/ast"
	"github.com/msto63/lumen/foundation/lang/token"
)

var (
	declarationKeywords = []Pattern{
		Lexeme("local"), Lexeme("var"), Lexeme("int"), Lexeme("num"),
		Lexeme("string"), Lexeme("bool"), Lexeme("boolean"),
	}
	functionKeywords = []Pattern{Lexeme("function"), Lexeme("func")}
)

// statements parses statements until a token matching end or EOF. Comment
// tokens found where a statement may start become Comment nodes.
func (p *Parser) statements(end Pattern) ([]ast.Stmt, error) {
	var list []ast.Stmt
	for {
		if p.raw().Kind == token.Comment {
			list = append(list, p.comment())
			continue
		}
		if p.check(end) || p.atEnd() {
			return list, nil
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		list = append(list, stmt)
	}
}

func (p *Parser) statement() (ast.Stmt, error) {
	switch {
	case p.check(declarationKeywords...):
		return p.variableDeclaration()
	case p.check(functionKeywords...):
		return p.functionDeclaration()
	case p.check(Lexeme("if")):
		return p.ifStatement()
	case p.check(Lexeme("while")):
		return p.whileStatement()
	case p.check(Lexeme("repeat")):
		return p.repeatStatement()
	case p.check(Lexeme("return")):
		return p.returnStatement()
	case p.check(Lexeme("print")):
		return p.printStatement()
	case p.check(Lexeme("break")):
		return p.breakStatement()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) comment() *ast.Comment {
	t := p.raw()
	p.pos++
	return &ast.Comment{Text: t.Lexeme, Pos: t.Pos()}
}

func (p *Parser) variableDeclaration() (ast.Stmt, error) {
	keyword := p.advance()
	name, err := p.consume(Kind(token.Identifier), "Expect variable name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(Lexeme("="), "Expect '=' after variable name."); err != nil {
		return nil, err
	}
	init, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(Lexeme(";"), "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &ast.VariableDeclaration{
		Keyword: keyword.Lexeme,
		Name:    name.Lexeme,
		Init:    init,
		Pos:     keyword.Pos(),
	}, nil
}

func (p *Parser) functionDeclaration() (ast.Stmt, error) {
	keyword := p.advance()
	name, err := p.consume(Kind(token.Identifier), "Expect function name.")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(Lexeme("("), "Expect '(' after function name."); err != nil {
		return nil, err
	}

	var params []string
	if !p.check(Lexeme(")")) {
		for {
			param, err := p.consume(Kind(token.Identifier), "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param.Lexeme)
			if _, ok := p.match(Lexeme(",")); !ok {
				break
			}
		}
	}
	if _, err := p.consume(Lexeme(")"), "Expect ')' after parameters."); err != nil {
		return nil, err
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDeclaration{
		Keyword: keyword.Lexeme,
		Name:    name.Lexeme,
		Params:  params,
		Body:    body,
		Pos:     keyword.Pos(),
	}, nil
}

func (p *Parser) block() (*ast.Block, error) {
	if err := p.nest(); err != nil {
		return nil, err
	}
	defer p.unnest()
	open, err := p.consume(Lexeme("{"), "Expect '{' before block.")
	if err != nil {
		return nil, err
	}
	statements, err := p.statements(Lexeme("}"))
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(Lexeme("}"), "Expect '}' after block."); err != nil {
		return nil, err
	}
	return &ast.Block{Statements: statements, Pos: open.Pos()}, nil
}

func (p *Parser) ifStatement() (ast.Stmt, error) {
	keyword := p.advance()
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	then, err := p.block()
	if err != nil {
		return nil, err
	}
	stmt := &ast.IfStatement{Condition: condition, Then: then, Pos: keyword.Pos()}

	for {
		arm, ok := p.match(Lexeme("elseif"))
		if !ok {
			break
		}
		cond, err := p.expression()
		if err != nil {
			return nil, err
		}
		body, err := p.block()
		if err != nil {
			return nil, err
		}
		stmt.ElseIfs = append(stmt.ElseIfs, ast.ElseIfClause{Condition: cond, Body: body, Pos: arm.Pos()})
	}

	if _, ok := p.match(Lexeme("else")); ok {
		if stmt.Else, err = p.block(); err != nil {
			return nil, err
		}
	}
	return stmt, nil
}

func (p *Parser) whileStatement() (ast.Stmt, error) {
	keyword := p.advance()
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStatement{Condition: condition, Body: body, Pos: keyword.Pos()}, nil
}

// repeatStatement parses `repeat <block> until <expression>`; no terminator
// follows the condition
func (p *Parser) repeatStatement() (ast.Stmt, error) {
	keyword := p.advance()
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(Lexeme("until"), "Expect 'until' after repeat block."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	return &ast.RepeatStatement{Body: body, Condition: condition, Pos: keyword.Pos()}, nil
}

func (p *Parser) returnStatement() (ast.Stmt, error) {
	keyword := p.advance()
	stmt := &ast.ReturnStatement{Pos: keyword.Pos()}
	if !p.check(Lexeme(";")) {
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}
	if _, err := p.consume(Lexeme(";"), "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) printStatement() (ast.Stmt, error) {
	keyword := p.advance()
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(Lexeme(";"), "Expect ';' after value."); err != nil {
		return nil, err
	}
	return &ast.PrintStatement{Value: value, Pos: keyword.Pos()}, nil
}

func (p *Parser) breakStatement() (ast.Stmt, error) {
	keyword := p.advance()
	if _, err := p.consume(Lexeme(";"), "Expect ';' after 'break'."); err != nil {
		return nil, err
	}
	return &ast.BreakStatement{Pos: keyword.Pos()}, nil
}

func (p *Parser) expressionStatement() (ast.Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(Lexeme(";"), "Expect ';' after expression."); err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Expr: expr, Pos: expr.Position()}, nil
}

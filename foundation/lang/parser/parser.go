// File: parser.go
// Title: Recursive Descent Parser
// Description: Builds a syntax tree from a token sequence with one token of
//              lookahead. The parser never backtracks: once a branch is chosen
//              from the current token it is final, and the first unmet
//              expectation aborts the parse with a ParseError.
// Author: msto63
// Version: v0.2.1
// Created: 2025-02-14
// Modified: 2025-03-09
//
// Change History:
// - 2025-02-14 v0.1.0: Initial parser implementation
// - 2025-03-02 v0.2.0: Comment statements, expression entry point
// - 2025-03-09 v0.2.1: Nesting depth limit

package parser

import (
	"fmt"
	"unicode/utf8"

	"github.com/msto63/lumen/foundation/lang/ast"
	"github.com/msto63/lumen/foundation/lang/token"
)

// ParseError reports the first grammar expectation that was not met.
// Message is the fixed text of the failing rule, Token the token found
// instead.
type ParseError struct {
	Message string
	Token   token.Token
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Token.Line, e.Token.Column, e.Message)
}

// Pos returns the position of the offending token
func (e *ParseError) Pos() token.Position {
	return e.Token.Pos()
}

// Pattern matches a token either by kind or by exact lexeme. It is the
// single predicate behind every lookahead and consume in the parser.
type Pattern struct {
	kind     token.Kind
	lexeme   string
	byLexeme bool
}

// Kind returns a pattern matching any token of kind k
func Kind(k token.Kind) Pattern {
	return Pattern{kind: k}
}

// Lexeme returns a pattern matching tokens whose text is exactly s
func Lexeme(s string) Pattern {
	return Pattern{lexeme: s, byLexeme: true}
}

// Matches reports whether t satisfies the pattern
func (p Pattern) Matches(t token.Token) bool {
	if p.byLexeme {
		return t.Kind != token.EOF && t.Lexeme == p.lexeme
	}
	return t.Kind == p.kind
}

// String returns the lexeme in quotes or the kind name
func (p Pattern) String() string {
	if p.byLexeme {
		return "'" + p.lexeme + "'"
	}
	return p.kind.String()
}

// Parser holds the cursor of one parse. Use Parse or ParseExpression; a
// Parser is not reused across inputs.
type Parser struct {
	tokens []token.Token
	pos    int
	eof    token.Token
	depth  int
}

// MaxNesting bounds how deeply groups, unary operators, calls and blocks
// may nest before the parse is rejected
const MaxNesting = 1000

// Parse parses a whole program. On failure it returns a *ParseError and no
// tree. A missing trailing EOF token is treated as end of input.
func Parse(tokens []token.Token) (*ast.Program, error) {
	p := newParser(tokens)
	return p.program()
}

// ParseExpression parses tokens that hold exactly one expression followed
// by EOF
func ParseExpression(tokens []token.Token) (ast.Expr, error) {
	p := newParser(tokens)
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if !p.atEnd() {
		return nil, p.errorAtCurrent(unexpected(p.peek()))
	}
	return expr, nil
}

func newParser(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens, eof: endOf(tokens)}
}

// endOf returns the EOF token of the sequence, synthesizing one after the
// last token when the sequence lacks it
func endOf(tokens []token.Token) token.Token {
	if len(tokens) == 0 {
		return token.Token{Kind: token.EOF, Line: 1, Column: 1}
	}
	last := tokens[len(tokens)-1]
	if last.Kind == token.EOF {
		return last
	}
	return token.Token{
		Kind:   token.EOF,
		Line:   last.Line,
		Column: last.Column + utf8.RuneCountInString(last.Lexeme),
	}
}

func (p *Parser) program() (*ast.Program, error) {
	start := p.raw().Pos()
	statements, err := p.statements(Kind(token.EOF))
	if err != nil {
		return nil, err
	}
	return &ast.Program{Statements: statements, Pos: start}, nil
}

// raw returns the current token without skipping comments
func (p *Parser) raw() token.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return p.eof
}

// peek returns the current token. Comment tokens that are not at the start
// of a statement are skipped.
func (p *Parser) peek() token.Token {
	for p.pos < len(p.tokens) && p.tokens[p.pos].Kind == token.Comment {
		p.pos++
	}
	return p.raw()
}

func (p *Parser) atEnd() bool {
	return p.peek().Kind == token.EOF
}

// advance consumes and returns the current token; EOF is never consumed
func (p *Parser) advance() token.Token {
	t := p.peek()
	if t.Kind != token.EOF {
		p.pos++
	}
	return t
}

// check reports whether the current token matches any of patterns
func (p *Parser) check(patterns ...Pattern) bool {
	t := p.peek()
	for _, pattern := range patterns {
		if pattern.Matches(t) {
			return true
		}
	}
	return false
}

// match consumes the current token if it matches any of patterns
func (p *Parser) match(patterns ...Pattern) (token.Token, bool) {
	if p.check(patterns...) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// consume advances past a token matching pattern or fails with message
func (p *Parser) consume(pattern Pattern, message string) (token.Token, error) {
	if p.check(pattern) {
		return p.advance(), nil
	}
	return token.Token{}, p.errorAtCurrent(message)
}

// nest records one more level of nesting before the opening token is
// consumed, so an error points at that token. Callers defer p.unnest()
// once nest succeeds.
func (p *Parser) nest() error {
	if p.depth >= MaxNesting {
		return p.errorAtCurrent("Expression nesting too deep.")
	}
	p.depth++
	return nil
}

func (p *Parser) unnest() {
	p.depth--
}

func (p *Parser) errorAtCurrent(message string) *ParseError {
	return &ParseError{Message: message, Token: p.peek()}
}

func unexpected(t token.Token) string {
	if t.Kind == token.EOF {
		return "Unexpected token: EOF"
	}
	return "Unexpected token: " + t.Lexeme
}

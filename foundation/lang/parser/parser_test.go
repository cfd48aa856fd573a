// File: parser_test.go
// Title: Parser Tests
// Description: Grammar productions, operator precedence and associativity,
//              error messages with positions, comment handling and token
//              sequences without a trailing EOF.
// Author: msto63
// Version: v0.2.1
// Created: 2025-02-14
// Modified: 2025-03-09
//
// Change History:
// - 2025-02-14 v0.1.0: Initial parser tests
// - 2025-03-02 v0.2.0: Comment and expression entry point tests
// - 2025-03-09 v0.2.1: Nesting limit and number range tests

package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/msto63/lumen/foundation/lang/ast"
	"github.com/msto63/lumen/foundation/lang/lexer"
	"github.com/msto63/lumen/foundation/lang/token"
)

func mustTokenize(t *testing.T, source string) []token.Token {
	t.Helper()
	tokens, err := lexer.Tokenize(source)
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %v", source, err)
	}
	return tokens
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"empty", "", "Program([])"},
		{
			"variable declaration",
			"int x = 45;",
			"Program([VariableDeclaration(int, x, NumberLiteral(45))])",
		},
		{
			"local string",
			"local s = 'hi';",
			`Program([VariableDeclaration(local, s, StringLiteral("hi"))])`,
		},
		{
			"boolean declaration",
			"boolean ok = true;",
			"Program([VariableDeclaration(boolean, ok, BooleanLiteral(true))])",
		},
		{
			"function declaration",
			"function add(a, b) { return a + b; }",
			"Program([FunctionDeclaration(add, [a, b], [ReturnStatement(BinaryExpression('+', Identifier(a), Identifier(b)))])])",
		},
		{
			"func without params",
			"func f() { }",
			"Program([FunctionDeclaration(f, [], [])])",
		},
		{
			"if elseif else",
			`if x > 5 { print "big"; } elseif x > 2 { print "mid"; } else { print "small"; }`,
			`Program([IfStatement(condition=BinaryExpression('>', Identifier(x), NumberLiteral(5)), ` +
				`thenBlock=[PrintStatement(StringLiteral("big"))], ` +
				`elseifClauses=[ElseIf(BinaryExpression('>', Identifier(x), NumberLiteral(2)), [PrintStatement(StringLiteral("mid"))])], ` +
				`elseBlock=[PrintStatement(StringLiteral("small"))])])`,
		},
		{
			"if without else",
			"if a { }",
			"Program([IfStatement(condition=Identifier(a), thenBlock=[], elseifClauses=[], elseBlock=none)])",
		},
		{
			"while with break",
			"while i < 10 { break; }",
			"Program([WhileStatement(condition=BinaryExpression('<', Identifier(i), NumberLiteral(10)), body=[BreakStatement])])",
		},
		{
			"repeat until",
			"repeat { print i; } until i >= 3",
			"Program([RepeatStatement(body=[PrintStatement(Identifier(i))], condition=BinaryExpression('>=', Identifier(i), NumberLiteral(3)))])",
		},
		{"bare return", "return;", "Program([ReturnStatement()])"},
		{"return value", "return nil;", "Program([ReturnStatement(NilLiteral)])"},
		{"print null", "print null;", "Program([PrintStatement(NilLiteral)])"},
		{
			"call statement",
			"foo(1, 2);",
			"Program([ExpressionStatement(FunctionCall(Identifier(foo), [NumberLiteral(1), NumberLiteral(2)]))])",
		},
		{"call without args", "f();", "Program([ExpressionStatement(FunctionCall(Identifier(f), []))])"},
		{
			"type keyword call",
			"print num(s);",
			"Program([PrintStatement(FunctionCall(Identifier(num), [Identifier(s)]))])",
		},
		{"bare type keyword", "print string;", "Program([PrintStatement(Identifier(string))])"},
		{"decimal", "print 3.14;", "Program([PrintStatement(NumberLiteral(3.14))])"},
		{
			"several statements",
			"int a = 1;\nprint a;\nbreak;",
			"Program([VariableDeclaration(int, a, NumberLiteral(1)), PrintStatement(Identifier(a)), BreakStatement])",
		},
		{
			"nested blocks",
			"while a { if b { break; } }",
			"Program([WhileStatement(condition=Identifier(a), body=[IfStatement(condition=Identifier(b), thenBlock=[BreakStatement], elseifClauses=[], elseBlock=none)])])",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, err := Parse(mustTokenize(t, tt.source))
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.source, err)
			}
			if got := ast.Format(program); got != tt.want {
				t.Errorf("Parse(%q)\n got: %s\nwant: %s", tt.source, got, tt.want)
			}
		})
	}
}

func TestExpressionPrecedence(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"multiplication binds tighter", "1 + 2 * 3", "BinaryExpression('+', NumberLiteral(1), BinaryExpression('*', NumberLiteral(2), NumberLiteral(3)))"},
		{"subtraction folds left", "a - b - c", "BinaryExpression('-', BinaryExpression('-', Identifier(a), Identifier(b)), Identifier(c))"},
		{"power folds left", "2 ^ 3 ^ 2", "BinaryExpression('^', BinaryExpression('^', NumberLiteral(2), NumberLiteral(3)), NumberLiteral(2))"},
		{"unary binds tighter than power", "-2 ^ 2", "BinaryExpression('^', UnaryExpression('-', NumberLiteral(2)), NumberLiteral(2))"},
		{"power binds tighter than product", "a * b ^ c", "BinaryExpression('*', Identifier(a), BinaryExpression('^', Identifier(b), Identifier(c)))"},
		{"nested unary", "not not x", "UnaryExpression('not', UnaryExpression('not', Identifier(x)))"},
		{"length and concat", `#s .. "x"`, `BinaryExpression('..', UnaryExpression('#', Identifier(s)), StringLiteral("x"))`},
		{"and binds tighter than or", "a or b and c", "BinaryExpression('or', Identifier(a), BinaryExpression('and', Identifier(b), Identifier(c)))"},
		{"comparison binds tighter than equality", "a == b < c", "BinaryExpression('==', Identifier(a), BinaryExpression('<', Identifier(b), Identifier(c)))"},
		{"equality folds left", "a != b == c", "BinaryExpression('==', BinaryExpression('!=', Identifier(a), Identifier(b)), Identifier(c))"},
		{"grouping", "(1 + 2) * 3", "BinaryExpression('*', BinaryExpression('+', NumberLiteral(1), NumberLiteral(2)), NumberLiteral(3))"},
		{"floor division and modulo", "x // 2 % 3", "BinaryExpression('%', BinaryExpression('//', Identifier(x), NumberLiteral(2)), NumberLiteral(3))"},
		{"division", "x / y", "BinaryExpression('/', Identifier(x), Identifier(y))"},
		{"booleans", "true and not false", "BinaryExpression('and', BooleanLiteral(true), UnaryExpression('not', BooleanLiteral(false)))"},
		{"call arguments are expressions", "f(a + 1, g())", "FunctionCall(Identifier(f), [BinaryExpression('+', Identifier(a), NumberLiteral(1)), FunctionCall(Identifier(g), [])])"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := ParseExpression(mustTokenize(t, tt.source))
			if err != nil {
				t.Fatalf("ParseExpression(%q) failed: %v", tt.source, err)
			}
			if got := ast.Format(expr); got != tt.want {
				t.Errorf("ParseExpression(%q)\n got: %s\nwant: %s", tt.source, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		message string
		line    int
		column  int
	}{
		{"missing semicolon after declaration", "int x = 1", "Expect ';' after variable declaration.", 1, 10},
		{"missing variable name", "int = 1;", "Expect variable name.", 1, 5},
		{"missing equals", "int x 1;", "Expect '=' after variable name.", 1, 7},
		{"missing function name", "function (a) {}", "Expect function name.", 1, 10},
		{"missing open paren", "function f a) {}", "Expect '(' after function name.", 1, 12},
		{"bad parameter", "function f(a, 1) {}", "Expect parameter name.", 1, 15},
		{"missing close paren after params", "function f(a b) {}", "Expect ')' after parameters.", 1, 14},
		{"missing block", "while x print x;", "Expect '{' before block.", 1, 9},
		{"unclosed block", "if x { print x;", "Expect '}' after block.", 1, 16},
		{"missing until", "repeat { } while x", "Expect 'until' after repeat block.", 1, 12},
		{"return without semicolon", "return 1", "Expect ';' after return value.", 1, 9},
		{"print without semicolon", "print 1", "Expect ';' after value.", 1, 8},
		{"break without semicolon", "break", "Expect ';' after 'break'.", 1, 6},
		{"expression without semicolon", "x y;", "Expect ';' after expression.", 1, 3},
		{"assignment is not an expression", "x = 5;", "Expect ';' after expression.", 1, 3},
		{"unclosed group", "print (1 + 2;", "Expect ')' after expression.", 1, 13},
		{"unclosed call", "print f(1, 2;", "Expect ')' after arguments.", 1, 13},
		{"unexpected punctuation", "print ;", "Unexpected token: ;", 1, 7},
		{"unexpected end", "print 1 +", "Unexpected token: EOF", 1, 10},
		{"keyword without production", "for x;", "Unexpected token: for", 1, 1},
		{"else if is not elseif", "if x { } else if y { }", "Expect '{' before block.", 1, 15},
		{"error on later line", "print 1;\nprint 2", "Expect ';' after value.", 2, 8},
		{"number out of range", "print " + strings.Repeat("9", 400) + ";", "Number literal out of range.", 1, 7},
		{"groups nested too deep", "print " + strings.Repeat("(", 400000) + "1" + strings.Repeat(")", 400000) + ";", "Expression nesting too deep.", 1, 1007},
		{"unary nested too deep", "print " + strings.Repeat("not ", MaxNesting+1) + "x;", "Expression nesting too deep.", 1, 4007},
		{"calls nested too deep", "print " + strings.Repeat("f(", MaxNesting+1) + "1" + strings.Repeat(")", MaxNesting+1) + ";", "Expression nesting too deep.", 1, 2008},
		{"blocks nested too deep", strings.Repeat("while x { ", MaxNesting+1) + strings.Repeat("}", MaxNesting+1), "Expression nesting too deep.", 1, 10009},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program, err := Parse(mustTokenize(t, tt.source))
			if err == nil {
				t.Fatalf("Parse(%q) = %s, want error", tt.source, ast.Format(program))
			}
			if program != nil {
				t.Errorf("Parse(%q) returned a tree alongside the error", tt.source)
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error type = %T, want *ParseError", err)
			}
			if perr.Message != tt.message {
				t.Errorf("Message = %q, want %q", perr.Message, tt.message)
			}
			if perr.Token.Line != tt.line || perr.Token.Column != tt.column {
				t.Errorf("position = %d:%d, want %d:%d", perr.Token.Line, perr.Token.Column, tt.line, tt.column)
			}
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := Parse(mustTokenize(t, "print 1"))
	want := "parse error at line 1, column 8: Expect ';' after value."
	if err == nil || err.Error() != want {
		t.Fatalf("Error() = %v, want %q", err, want)
	}
	var perr *ParseError
	if errors.As(err, &perr) && perr.Pos() != (token.Position{Line: 1, Column: 8}) {
		t.Errorf("Pos() = %v", perr.Pos())
	}
}

func TestNodePositions(t *testing.T) {
	program, err := Parse(mustTokenize(t, "int x = 1;\n  print a + -b;"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(program.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(program.Statements))
	}

	decl := program.Statements[0].(*ast.VariableDeclaration)
	if decl.Pos != (token.Position{Line: 1, Column: 1}) {
		t.Errorf("declaration at %v, want 1:1", decl.Pos)
	}
	if pos := decl.Init.Position(); pos != (token.Position{Line: 1, Column: 9}) {
		t.Errorf("initializer at %v, want 1:9", pos)
	}

	stmt := program.Statements[1].(*ast.PrintStatement)
	if stmt.Pos != (token.Position{Line: 2, Column: 3}) {
		t.Errorf("print at %v, want 2:3", stmt.Pos)
	}
	sum := stmt.Value.(*ast.BinaryExpression)
	if sum.Pos != (token.Position{Line: 2, Column: 9}) {
		t.Errorf("binary expression at %v, want position of left operand 2:9", sum.Pos)
	}
	neg := sum.Right.(*ast.UnaryExpression)
	if neg.Pos != (token.Position{Line: 2, Column: 13}) {
		t.Errorf("unary expression at %v, want 2:13", neg.Pos)
	}
}

func TestNumberLiteralValue(t *testing.T) {
	expr, err := ParseExpression(mustTokenize(t, "12.5"))
	if err != nil {
		t.Fatalf("ParseExpression failed: %v", err)
	}
	num := expr.(*ast.NumberLiteral)
	if num.Value != 12.5 || num.Raw != "12.5" {
		t.Errorf("got Value=%v Raw=%q", num.Value, num.Raw)
	}
}

func TestNestingAtLimit(t *testing.T) {
	sources := []string{
		"print " + strings.Repeat("(", MaxNesting) + "1" + strings.Repeat(")", MaxNesting) + ";",
		strings.Repeat("while x { ", MaxNesting) + strings.Repeat("}", MaxNesting),
		"print " + strings.Repeat("(", MaxNesting/2) + "1" + strings.Repeat(")", MaxNesting/2) + ";\n" +
			"print " + strings.Repeat("(", MaxNesting/2) + "2" + strings.Repeat(")", MaxNesting/2) + ";",
	}
	for _, source := range sources {
		if _, err := Parse(mustTokenize(t, source)); err != nil {
			t.Errorf("Parse failed at depth %d: %v", MaxNesting, err)
		}
	}
}

func TestTokensWithoutEOF(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		program, err := Parse(nil)
		if err != nil {
			t.Fatalf("Parse(nil) failed: %v", err)
		}
		if len(program.Statements) != 0 {
			t.Errorf("got %d statements, want 0", len(program.Statements))
		}
	})

	t.Run("complete statement", func(t *testing.T) {
		tokens := []token.Token{
			{Kind: token.Keyword, Lexeme: "print", Line: 1, Column: 1},
			{Kind: token.Identifier, Lexeme: "x", Line: 1, Column: 7},
			{Kind: token.Punctuation, Lexeme: ";", Line: 1, Column: 8},
		}
		program, err := Parse(tokens)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if got := ast.Format(program); got != "Program([PrintStatement(Identifier(x))])" {
			t.Errorf("got %s", got)
		}
	})

	t.Run("truncated statement", func(t *testing.T) {
		tokens := []token.Token{
			{Kind: token.Keyword, Lexeme: "print", Line: 1, Column: 1},
			{Kind: token.Identifier, Lexeme: "x", Line: 1, Column: 7},
		}
		_, err := Parse(tokens)
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("error = %v, want *ParseError", err)
		}
		if perr.Token.Kind != token.EOF || perr.Token.Column != 8 {
			t.Errorf("error token = %+v, want synthesized EOF at column 8", perr.Token)
		}
	})
}

func TestComments(t *testing.T) {
	source := "-- head\nprint 1 -- inline\n+ 2;\nwhile x { -[[ body ]]- }\n-- tail"
	tokens, err := lexer.New(lexer.Options{KeepComments: true}).Tokenize(source)
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	program, err := Parse(tokens)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := `Program([Comment("-- head"), ` +
		`PrintStatement(BinaryExpression('+', NumberLiteral(1), NumberLiteral(2))), ` +
		`WhileStatement(condition=Identifier(x), body=[Comment("-[[ body ]]-")]), ` +
		`Comment("-- tail")])`
	if got := ast.Format(program); got != want {
		t.Errorf("got:  %s\nwant: %s", got, want)
	}
}

func TestParseExpressionTrailingTokens(t *testing.T) {
	_, err := ParseExpression(mustTokenize(t, "1 + 2;"))
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if perr.Message != "Unexpected token: ;" {
		t.Errorf("Message = %q", perr.Message)
	}
}

func TestPattern(t *testing.T) {
	semi := token.Token{Kind: token.Punctuation, Lexeme: ";", Line: 1, Column: 1}
	eof := token.Token{Kind: token.EOF, Line: 1, Column: 2}

	if !Lexeme(";").Matches(semi) || Lexeme(",").Matches(semi) {
		t.Error("Lexeme pattern mismatch")
	}
	if !Kind(token.Punctuation).Matches(semi) || Kind(token.Operator).Matches(semi) {
		t.Error("Kind pattern mismatch")
	}
	if Lexeme("").Matches(eof) {
		t.Error("Lexeme pattern must never match EOF")
	}
	if !Kind(token.EOF).Matches(eof) {
		t.Error("Kind(EOF) must match EOF")
	}
	if got := Lexeme("until").String(); got != "'until'" {
		t.Errorf("String() = %q", got)
	}
}

func TestParseLargeInput(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 500; i++ {
		b.WriteString("if a { print a .. b; } else { while c { break; } }\n")
	}
	program, err := Parse(mustTokenize(t, b.String()))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(program.Statements) != 500 {
		t.Errorf("got %d statements, want 500", len(program.Statements))
	}
	if err := ast.Validate(program); err != nil {
		t.Errorf("parsed tree does not validate: %v", err)
	}
}

// File: lang_test.go
// Title: Language Engine Tests
// Description: Pipeline results, error codes and wrapping, input limits,
//              diagnostics and logging of the engine.
// Author: msto63
// Version: v0.2.1
// Created: 2025-02-16
// Modified: 2025-03-09
//
// Change History:
// - 2025-02-16 v0.1.0: Initial engine tests
// - 2025-03-02 v0.2.0: Check, Diagnose and logging tests
// - 2025-03-09 v0.2.1: Nesting limit error, trace logging

package lang

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"

	lerror "github.com/msto63/lumen/foundation/core/error"
	llog "github.com/msto63/lumen/foundation/core/log"
	"github.com/msto63/lumen/foundation/lang/ast"
	"github.com/msto63/lumen/foundation/lang/lexer"
	"github.com/msto63/lumen/foundation/lang/parser"
	"github.com/msto63/lumen/foundation/lang/token"
)

func newTestEngine(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = llog.Discard()
	}
	return New(opts)
}

func TestNewDefaults(t *testing.T) {
	e := newTestEngine(Options{})
	if got := e.Options().MaxInputLength; got != DefaultMaxInputLength {
		t.Errorf("MaxInputLength = %d, want %d", got, DefaultMaxInputLength)
	}
	if e.Options().Logger == nil {
		t.Error("Logger should be set")
	}
}

func TestTokenize(t *testing.T) {
	e := newTestEngine(Options{})
	tokens, err := e.Tokenize("int x = 45;")
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	want := []token.Token{
		{Kind: token.Keyword, Lexeme: "int", Line: 1, Column: 1},
		{Kind: token.Identifier, Lexeme: "x", Line: 1, Column: 5},
		{Kind: token.Operator, Lexeme: "=", Line: 1, Column: 7},
		{Kind: token.Number, Lexeme: "45", Line: 1, Column: 9},
		{Kind: token.Punctuation, Lexeme: ";", Line: 1, Column: 11},
		{Kind: token.EOF, Line: 1, Column: 12},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(tokens), len(want), tokens)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, tokens[i], want[i])
		}
	}
}

func TestParse(t *testing.T) {
	e := newTestEngine(Options{})
	program, err := e.Parse("foo(1, 2);")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	want := "Program([ExpressionStatement(FunctionCall(Identifier(foo), [NumberLiteral(1), NumberLiteral(2)]))])"
	if got := ast.Format(program); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestKeepComments(t *testing.T) {
	e := newTestEngine(Options{KeepComments: true})
	program, err := e.Parse("-- greeting\nprint 'hi';")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(program.Statements) != 2 {
		t.Fatalf("got %d statements, want 2", len(program.Statements))
	}
	if c, ok := program.Statements[0].(*ast.Comment); !ok || c.Text != "-- greeting" {
		t.Errorf("first statement = %v, want comment", program.Statements[0])
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		code   lerror.Code
		op     string
		line   int
		column int
	}{
		{"lexical", "int x = 4 @ 5;", lerror.CodeLexicalError, "lang.Tokenize", 1, 11},
		{"syntax", "int x = 1", lerror.CodeSyntaxError, "lang.Parse", 1, 10},
		{"syntax on second line", "print 1;\nprint ;", lerror.CodeSyntaxError, "lang.Parse", 2, 7},
		{"nesting too deep", "print " + strings.Repeat("(", 400000) + "1" + strings.Repeat(")", 400000) + ";", lerror.CodeSyntaxError, "lang.Parse", 1, 1007},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(Options{})
			program, err := e.Parse(tt.source)
			if err == nil {
				t.Fatalf("Parse(%q) = %v, want error", tt.source, program)
			}
			if !lerror.HasCode(err, tt.code) {
				t.Errorf("code = %s, want %s", lerror.GetCode(err), tt.code)
			}
			if lerror.GetSeverity(err) != lerror.SeverityLow {
				t.Errorf("severity = %s, want low", lerror.GetSeverity(err))
			}
			structured, ok := lerror.As(err)
			if !ok {
				t.Fatalf("error %T is not structured", err)
			}
			if structured.Operation() != tt.op {
				t.Errorf("operation = %q, want %q", structured.Operation(), tt.op)
			}
			details := structured.Details()
			if details["line"] != tt.line || details["column"] != tt.column {
				t.Errorf("details = %v, want line %d column %d", details, tt.line, tt.column)
			}

			diag, ok := Diagnose(err)
			if !ok {
				t.Fatal("Diagnose did not recognize the error")
			}
			if diag.Pos.Line != tt.line || diag.Pos.Column != tt.column {
				t.Errorf("diagnostic at %v, want %d:%d", diag.Pos, tt.line, tt.column)
			}
		})
	}
}

func TestErrorsReachConcreteTypes(t *testing.T) {
	e := newTestEngine(Options{})

	_, err := e.Tokenize("x ? y")
	var lexErr *lexer.LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("error %v does not wrap *lexer.LexError", err)
	}
	if lexErr.Char != '?' {
		t.Errorf("Char = %q, want '?'", lexErr.Char)
	}

	_, err = e.Parse("print 1")
	var parseErr *parser.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error %v does not wrap *parser.ParseError", err)
	}
	if parseErr.Message != "Expect ';' after value." {
		t.Errorf("Message = %q", parseErr.Message)
	}
	if !strings.HasPrefix(err.Error(), "parsing failed: parse error at line 1, column 8") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestInputLimit(t *testing.T) {
	e := newTestEngine(Options{MaxInputLength: 8})
	_, err := e.Parse("print 12345;")
	if !lerror.HasCode(err, lerror.CodeInvalidLength) {
		t.Fatalf("error = %v, want INVALID_LENGTH", err)
	}
	if _, ok := Diagnose(err); ok {
		t.Error("Diagnose should not recognize a length error")
	}

	unlimited := newTestEngine(Options{MaxInputLength: -1})
	if _, err := unlimited.Parse(strings.Repeat("print 1;\n", 1000)); err != nil {
		t.Errorf("unlimited engine rejected input: %v", err)
	}
}

func TestCheck(t *testing.T) {
	e := newTestEngine(Options{})
	result, err := e.Check("function f(a) { return g(a); }\nprint f(1);")
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if result.CorrelationID == "" {
		t.Error("CorrelationID is empty")
	}
	if len(result.Program.Statements) != 2 {
		t.Errorf("got %d statements, want 2", len(result.Program.Statements))
	}
	if result.Tokens[len(result.Tokens)-1].Kind != token.EOF {
		t.Error("token sequence does not end with EOF")
	}
	if got := result.Stats.Undeclared(); len(got) != 1 || got[0] != "g" {
		t.Errorf("Undeclared() = %v, want [g]", got)
	}
}

func TestDiagnose(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
		ok   bool
	}{
		{"lex error", &lexer.LexError{Char: '@', Line: 2, Column: 4}, "2:4: unexpected character '@'", true},
		{
			"parse error",
			&parser.ParseError{Message: "Expect ';' after value.", Token: token.Token{Kind: token.EOF, Line: 1, Column: 8}},
			"1:8: Expect ';' after value.",
			true,
		},
		{"other error", errors.New("boom"), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diag, ok := Diagnose(tt.err)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && diag.String() != tt.want {
				t.Errorf("String() = %q, want %q", diag.String(), tt.want)
			}
		})
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := llog.NewWithConfig(llog.Config{
		Level:  llog.LevelDebug,
		Format: llog.FormatLogfmt,
		Output: &buf,
	})
	e := New(Options{Logger: logger})

	if _, err := e.Check("print 1;"); err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"tokenize completed", "parse completed", "Source checked", `component="lang-engine"`, "correlation_id="} {
		if !strings.Contains(out, want) {
			t.Errorf("log output lacks %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if _, err := e.Parse("print ;"); err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(buf.String(), "parse failed") {
		t.Errorf("log output lacks failure line:\n%s", buf.String())
	}
}

func TestTraceLogsTokenStream(t *testing.T) {
	var buf bytes.Buffer
	e := New(Options{Logger: llog.NewWithConfig(llog.Config{
		Level:  llog.LevelTrace,
		Format: llog.FormatLogfmt,
		Output: &buf,
	})})

	if _, err := e.Tokenize("print x;"); err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	want := `message="Token stream"`
	if !strings.Contains(buf.String(), want) || !strings.Contains(buf.String(), `stream="Keyword(print) Identifier(x) Punctuation(;) EOF"`) {
		t.Errorf("trace output lacks token stream:\n%s", buf.String())
	}

	buf.Reset()
	quiet := New(Options{Logger: llog.NewWithConfig(llog.Config{Level: llog.LevelDebug, Format: llog.FormatLogfmt, Output: &buf})})
	if _, err := quiet.Tokenize("print x;"); err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if strings.Contains(buf.String(), "Token stream") {
		t.Errorf("token stream logged above trace level:\n%s", buf.String())
	}
}

func TestConcurrentUse(t *testing.T) {
	e := newTestEngine(Options{})
	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := e.Check("while x < 10 { print x .. 'y'; }"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent Check failed: %v", err)
	}
}

func TestFormatTokens(t *testing.T) {
	tokens, err := lexer.Tokenize("print \"a\nb\";")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(FormatTokens(tokens), "\n"), "\n")
	if len(lines) != len(tokens) {
		t.Fatalf("got %d lines for %d tokens:\n%s", len(lines), len(tokens), strings.Join(lines, "\n"))
	}

	want := [][]string{
		{"1:1", "Keyword", "print"},
		{"1:7", "String", `"a\nb"`},
		{"2:3", "Punctuation", ";"},
		{"2:4", "EOF"},
	}
	for i, fields := range want {
		got := strings.Fields(lines[i])
		if strings.Join(got, " ") != strings.Join(fields, " ") {
			t.Errorf("line %d = %q, want fields %v", i, lines[i], fields)
		}
	}
}

// File: lang.go
// Title: Language Front-End Engine
// Description: High-level interface over the lexer and parser. Adds input
//              size limits, per-call correlation IDs, timing logs and coded
//              errors while keeping the concrete LexError and ParseError
//              reachable through errors.As.
// Author: msto63
// Version: v0.2.2
// Created: 2025-02-16
// Modified: 2025-03-09
//
// Change History:
// - 2025-02-16 v0.1.0: Initial engine with Tokenize and Parse
// - 2025-03-02 v0.2.0: Check with tree statistics, Diagnose helper
// - 2025-03-05 v0.2.1: FormatTokens listing shared by CLI and REPL
// - 2025-03-09 v0.2.2: Token stream logged at trace level

// Package lang ties the lumen lexer, parser and syntax tree tooling together
// behind a single Engine.
package lang

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	lerror "github.com/msto63/lumen/foundation/core/error"
	llog "github.com/msto63/lumen/foundation/core/log"
	"github.com/msto63/lumen/foundation/lang/ast"
	"github.com/msto63/lumen/foundation/lang/lexer"
	"github.com/msto63/lumen/foundation/lang/parser"
	"github.com/msto63/lumen/foundation/lang/token"
)

// DefaultMaxInputLength is the input limit used when Options leaves it zero
const DefaultMaxInputLength = 1 << 20

// Options configures an Engine
type Options struct {
	// Logger receives timing and failure logs; defaults to llog.GetDefault()
	Logger *llog.Logger

	// MaxInputLength limits the source size in bytes. Zero selects
	// DefaultMaxInputLength, a negative value disables the limit.
	MaxInputLength int

	// KeepComments emits comment tokens and Comment nodes
	KeepComments bool
}

// Engine runs the front-end pipeline. It holds no per-call state and is
// safe for concurrent use.
type Engine struct {
	lexer   *lexer.Lexer
	logger  *llog.Logger
	options Options
}

// Result is the outcome of a successful Check
type Result struct {
	CorrelationID string        `json:"correlation_id" yaml:"correlation_id"`
	Tokens        []token.Token `json:"-" yaml:"-"`
	Program       *ast.Program  `json:"-" yaml:"-"`
	Stats         *ast.Stats    `json:"stats" yaml:"stats"`
	Duration      time.Duration `json:"duration" yaml:"duration"`
}

// New creates an engine
func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = llog.GetDefault()
	}
	if opts.MaxInputLength == 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}

	logger := opts.Logger.WithField("component", "lang-engine")
	logger.Debug("Language engine initialized", llog.Fields{
		"maxInputLength": opts.MaxInputLength,
		"keepComments":   opts.KeepComments,
	})

	return &Engine{
		lexer:   lexer.New(lexer.Options{KeepComments: opts.KeepComments}),
		logger:  logger,
		options: opts,
	}
}

// Options returns the effective options
func (e *Engine) Options() Options {
	return e.options
}

// Tokenize converts source into tokens ending with EOF
func (e *Engine) Tokenize(source string) ([]token.Token, error) {
	logger := e.logger.WithCorrelationID(uuid.NewString())
	return e.tokenize(logger, source)
}

// Parse tokenizes and parses source into a program
func (e *Engine) Parse(source string) (*ast.Program, error) {
	logger := e.logger.WithCorrelationID(uuid.NewString())
	tokens, err := e.tokenize(logger, source)
	if err != nil {
		return nil, err
	}
	return e.parse(logger, tokens)
}

// Check parses source and summarizes the resulting tree
func (e *Engine) Check(source string) (*Result, error) {
	id := uuid.NewString()
	logger := e.logger.WithCorrelationID(id)
	start := time.Now()

	tokens, err := e.tokenize(logger, source)
	if err != nil {
		return nil, err
	}
	program, err := e.parse(logger, tokens)
	if err != nil {
		return nil, err
	}

	result := &Result{
		CorrelationID: id,
		Tokens:        tokens,
		Program:       program,
		Stats:         ast.Collect(program),
		Duration:      time.Since(start),
	}
	logger.Info("Source checked", llog.Fields{
		"tokens":     len(tokens),
		"statements": len(program.Statements),
		"nodes":      result.Stats.Nodes,
		"duration":   result.Duration.String(),
	})
	return result, nil
}

func (e *Engine) tokenize(logger *llog.Logger, source string) ([]token.Token, error) {
	const op = "lang.Tokenize"
	timer := logger.StartTimer("tokenize").WithField("bytes", len(source))

	if limit := e.options.MaxInputLength; limit > 0 && len(source) > limit {
		err := lerror.New(fmt.Sprintf("input of %d bytes exceeds limit of %d bytes", len(source), limit)).
			WithCode(lerror.CodeInvalidLength).
			WithOperation(op).
			WithDetail("length", len(source)).
			WithDetail("limit", limit)
		timer.StopWithError(err)
		return nil, err
	}

	tokens, err := e.lexer.Tokenize(source)
	if err != nil {
		wrapped := lerror.Wrap(err, "tokenization failed").
			WithCode(lerror.CodeLexicalError).
			WithOperation(op)
		var lexErr *lexer.LexError
		if errors.As(err, &lexErr) {
			wrapped = wrapped.WithDetail("line", lexErr.Line).WithDetail("column", lexErr.Column)
		}
		timer.StopWithError(wrapped)
		return nil, wrapped
	}

	timer.WithField("tokens", len(tokens)).Stop()
	if logger.IsLevelEnabled(llog.LevelTrace) {
		stream := make([]string, len(tokens))
		for i, t := range tokens {
			stream[i] = t.String()
		}
		logger.Trace("Token stream", llog.Fields{"stream": strings.Join(stream, " ")})
	}
	return tokens, nil
}

func (e *Engine) parse(logger *llog.Logger, tokens []token.Token) (*ast.Program, error) {
	const op = "lang.Parse"
	timer := logger.StartTimer("parse").WithField("tokens", len(tokens))

	program, err := parser.Parse(tokens)
	if err != nil {
		wrapped := lerror.Wrap(err, "parsing failed").
			WithCode(lerror.CodeSyntaxError).
			WithOperation(op)
		var parseErr *parser.ParseError
		if errors.As(err, &parseErr) {
			wrapped = wrapped.WithDetail("line", parseErr.Token.Line).WithDetail("column", parseErr.Token.Column)
		}
		timer.StopWithError(wrapped)
		return nil, wrapped
	}

	timer.WithField("statements", len(program.Statements)).Stop()
	return program, nil
}

// Diagnostic is a positioned front-end error message
type Diagnostic struct {
	Pos     token.Position
	Message string
}

// String renders the diagnostic as "line:column: message"
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Pos, d.Message)
}

// Diagnose extracts the position and bare message of a lexical or syntax
// error anywhere in err's chain. It reports false for other errors.
func Diagnose(err error) (Diagnostic, bool) {
	var lexErr *lexer.LexError
	if errors.As(err, &lexErr) {
		return Diagnostic{
			Pos:     lexErr.Pos(),
			Message: fmt.Sprintf("unexpected character %q", lexErr.Char),
		}, true
	}
	var parseErr *parser.ParseError
	if errors.As(err, &parseErr) {
		return Diagnostic{Pos: parseErr.Pos(), Message: parseErr.Message}, true
	}
	return Diagnostic{}, false
}

var lexemeEscaper = strings.NewReplacer("\n", `\n`, "\r", `\r`, "\t", `\t`)

// FormatTokens lists tokens one per line as position, kind and lexeme.
// Line breaks inside lexemes are escaped so every token stays on one line.
func FormatTokens(tokens []token.Token) string {
	var b strings.Builder
	for _, t := range tokens {
		line := fmt.Sprintf("%-8s %-12s %s", t.Pos(), t.Kind, lexemeEscaper.Replace(t.Lexeme))
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteByte('\n')
	}
	return b.String()
}

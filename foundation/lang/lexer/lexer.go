// File: lexer.go
// Title: Lexical Analyzer
// Description: Converts source text into a token sequence terminated by EOF.
//              At each position an ordered rule table is evaluated and the
//              first rule that matches wins; order decides ties, not match
//              length. Whitespace and comments are consumed without tokens
//              unless comment tokens are requested.
// Author: msto63
// Version: v0.2.0
// Created: 2025-02-10
// Modified: 2025-03-02
//
// Change History:
// - 2025-02-10 v0.1.0: Initial rule-table lexer
// - 2025-03-02 v0.2.0: Optional comment tokens

package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/msto63/lumen/foundation/lang/token"
)

// LexError reports a character at which no rule matches
type LexError struct {
	Char   rune
	Line   int
	Column int
}

// Error implements the error interface
func (e *LexError) Error() string {
	return fmt.Sprintf("unexpected character '%c' at line %d, column %d", e.Char, e.Line, e.Column)
}

// Pos returns the position of the offending character
func (e *LexError) Pos() token.Position {
	return token.Position{Line: e.Line, Column: e.Column}
}

// Options configures a Lexer
type Options struct {
	// KeepComments emits Comment tokens for line and block comments instead
	// of dropping them. The lexeme is the full comment text.
	KeepComments bool
}

// Lexer turns source text into tokens. A Lexer holds no per-call state and
// may be shared between goroutines.
type Lexer struct {
	options Options
}

// New creates a Lexer with the given options
func New(opts Options) *Lexer {
	return &Lexer{options: opts}
}

// Tokenize tokenizes source with default options
func Tokenize(source string) ([]token.Token, error) {
	return New(Options{}).Tokenize(source)
}

// Tokenize returns every token of source followed by EOF. On failure it
// returns a *LexError and no tokens.
func (l *Lexer) Tokenize(source string) ([]token.Token, error) {
	c := cursor{src: source, line: 1, column: 1}
	tokens := make([]token.Token, 0, len(source)/3+1)

	for c.pos < len(c.src) {
		rest := c.src[c.pos:]

		matched := false
		for i := range rules {
			r := &rules[i]
			n := r.match(rest)
			if n == 0 {
				continue
			}

			text := rest[:n]
			if kind, emit := r.classify(text, l.options); emit {
				tokens = append(tokens, token.Token{
					Kind:   kind,
					Lexeme: text,
					Line:   c.line,
					Column: c.column,
				})
			}
			c.advance(text)
			matched = true
			break
		}

		if !matched {
			ch, _ := utf8.DecodeRuneInString(rest)
			return nil, &LexError{Char: ch, Line: c.line, Column: c.column}
		}
	}

	tokens = append(tokens, token.Token{Kind: token.EOF, Line: c.line, Column: c.column})
	return tokens, nil
}

// cursor tracks the byte offset and the 1-based line and column
type cursor struct {
	src    string
	pos    int
	line   int
	column int
}

// advance moves past text. Line breaks inside text move the line forward
// and reset the column to the characters after the last break.
func (c *cursor) advance(text string) {
	c.pos += len(text)

	if breaks := strings.Count(text, "\n"); breaks > 0 {
		c.line += breaks
		c.column = utf8.RuneCountInString(text[strings.LastIndexByte(text, '\n')+1:]) + 1
		return
	}
	c.column += utf8.RuneCountInString(text)
}

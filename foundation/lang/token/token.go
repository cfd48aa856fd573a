// File: token.go
// Title: Lexical Tokens
// Description: Defines the token kinds, the token value produced by the
//              lexer, source positions, and the reserved word and operator
//              tables of the language.
// Author: msto63
// Version: v0.1.0
// Created: 2025-02-10
// Modified: 2025-02-10
//
// Change History:
// - 2025-02-10 v0.1.0: Initial token definitions

package token

import (
	"fmt"
	"sort"
)

// Kind classifies a token. The set is closed.
type Kind int

const (
	EOF Kind = iota
	Number
	Identifier
	Keyword
	Operator
	Punctuation
	String
	Comment
)

var kindNames = [...]string{
	EOF:         "EOF",
	Number:      "Number",
	Identifier:  "Identifier",
	Keyword:     "Keyword",
	Operator:    "Operator",
	Punctuation: "Punctuation",
	String:      "String",
	Comment:     "Comment",
}

// String returns the name of the kind
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText renders the kind by name in JSON and YAML output
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseKind returns the kind with the given name
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return EOF, false
}

// Position is a 1-based line and column in the source text.
// Columns count characters, not bytes.
type Position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// String returns "line:column"
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether p points into a source text
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// Token is one lexical unit. The lexeme is the exact source text; for
// strings it includes the quotes. The EOF token has an empty lexeme.
type Token struct {
	Kind   Kind   `json:"kind" yaml:"kind"`
	Lexeme string `json:"lexeme" yaml:"lexeme"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
}

// Pos returns the position of the first character of the token
func (t Token) Pos() Position {
	return Position{Line: t.Line, Column: t.Column}
}

// Is reports whether the token has kind k
func (t Token) Is(k Kind) bool {
	return t.Kind == k
}

// String returns a compact representation such as Keyword(if) or EOF
func (t Token) String() string {
	if t.Kind == EOF {
		return "EOF"
	}
	return fmt.Sprintf("%s(%s)", t.Kind, t.Lexeme)
}

var keywords = map[string]struct{}{
	"if": {}, "else": {}, "elseif": {}, "while": {}, "function": {}, "func": {},
	"return": {}, "var": {}, "local": {}, "true": {}, "false": {}, "and": {},
	"or": {}, "not": {}, "for": {}, "break": {}, "repeat": {}, "nil": {},
	"null": {}, "print": {}, "until": {}, "type": {}, "string": {},
	"boolean": {}, "bool": {}, "num": {}, "int": {},
}

var operators = map[string]struct{}{
	"+": {}, "-": {}, "*": {}, "/": {}, "//": {}, "^": {}, "%": {},
	"+=": {}, "-=": {}, "*=": {}, "/=": {}, "//=": {}, "%=": {}, "^=": {}, "..=": {},
	"=": {}, "==": {}, "!=": {}, "<": {}, ">": {}, "<=": {}, ">=": {},
	"&": {}, "|": {}, "..": {}, "#": {},
}

// IsKeyword reports whether s is a reserved word. Matching is case-sensitive.
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}

// IsOperator reports whether s is a member of the operator set
func IsOperator(s string) bool {
	_, ok := operators[s]
	return ok
}

// Keywords returns the reserved words in sorted order
func Keywords() []string {
	return sortedKeys(keywords)
}

// Operators returns the operator set in sorted order
func Operators() []string {
	return sortedKeys(operators)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// File: rules.go
// Title: Lexer Rule Table
// Description: The ordered rules the lexer evaluates at every position. Each
//              rule reports how many bytes it matches at the start of the
//              remaining input and how the matched text is classified.
// Author: msto63
// Version: v0.2.1
// Created: 2025-02-10
// Modified: 2025-03-09
//
// Change History:
// - 2025-02-10 v0.1.0: Initial rule table
// - 2025-03-02 v0.2.0: Floor division, concatenation and compound operators
// - 2025-03-09 v0.2.1: Byte order mark counts as whitespace

package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/msto63/lumen/foundation/lang/token"
)

// rule is one entry of the rule table. match returns the length in bytes of
// the match at the start of s, or 0. classify returns the token kind and
// whether a token is emitted at all.
type rule struct {
	name     string
	match    func(s string) int
	classify func(text string, opts Options) (token.Kind, bool)
}

// Order matters: decimals before integers, multi-character operators before
// single characters.
var rules = []rule{
	{"whitespace", matchWhitespace, skip},
	{"line-comment", matchLineComment, comment},
	{"block-comment", matchBlockComment, comment},
	{"double-quoted-string", matchQuoted('"'), fixed(token.String)},
	{"single-quoted-string", matchQuoted('\''), fixed(token.String)},
	{"decimal", matchDecimal, fixed(token.Number)},
	{"integer", matchDigits, fixed(token.Number)},
	{"word", matchWord, classifyWord},
	{"compound-operator", matchCompoundOperator, fixed(token.Operator)},
	{"single-character", matchSingle, classifySingle},
}

// compoundOperators are tried longest first
var compoundOperators = []string{
	"//=", "..=",
	"==", "!=", "<=", ">=", "&&", "||",
	"//", "..",
	"+=", "-=", "*=", "/=", "%=", "^=",
}

const singleChars = "+-*/^%#=<>&|(){};,."

func skip(string, Options) (token.Kind, bool) {
	return token.EOF, false
}

func comment(_ string, opts Options) (token.Kind, bool) {
	return token.Comment, opts.KeepComments
}

func fixed(kind token.Kind) func(string, Options) (token.Kind, bool) {
	return func(string, Options) (token.Kind, bool) {
		return kind, true
	}
}

func classifyWord(text string, _ Options) (token.Kind, bool) {
	if token.IsKeyword(text) {
		return token.Keyword, true
	}
	return token.Identifier, true
}

func classifySingle(text string, _ Options) (token.Kind, bool) {
	if token.IsOperator(text) {
		return token.Operator, true
	}
	return token.Punctuation, true
}

// matchWhitespace also skips the byte order mark, which editors may leave
// at the start of a script
func matchWhitespace(s string) int {
	n := 0
	for n < len(s) {
		r, size := utf8.DecodeRuneInString(s[n:])
		if !unicode.IsSpace(r) && r != '\uFEFF' {
			break
		}
		n += size
	}
	return n
}

// matchLineComment matches "--" up to, not including, the line terminator
func matchLineComment(s string) int {
	if !strings.HasPrefix(s, "--") {
		return 0
	}
	if end := strings.IndexAny(s, "\n\r\u2028\u2029"); end >= 0 {
		return end
	}
	return len(s)
}

// matchBlockComment matches the shortest "-[[ ... ]]-" span. An unclosed
// block comment does not match.
func matchBlockComment(s string) int {
	if !strings.HasPrefix(s, "-[[") {
		return 0
	}
	end := strings.Index(s[3:], "]]-")
	if end < 0 {
		return 0
	}
	return 3 + end + 3
}

// matchQuoted matches a string literal without escapes. An unterminated
// literal does not match.
func matchQuoted(quote byte) func(string) int {
	return func(s string) int {
		if len(s) == 0 || s[0] != quote {
			return 0
		}
		end := strings.IndexByte(s[1:], quote)
		if end < 0 {
			return 0
		}
		return end + 2
	}
}

func matchDigits(s string) int {
	n := 0
	for n < len(s) && isDigit(s[n]) {
		n++
	}
	return n
}

func matchDecimal(s string) int {
	whole := matchDigits(s)
	if whole == 0 || whole >= len(s) || s[whole] != '.' {
		return 0
	}
	frac := matchDigits(s[whole+1:])
	if frac == 0 {
		return 0
	}
	return whole + 1 + frac
}

func matchWord(s string) int {
	if len(s) == 0 || !(isLetter(s[0]) || s[0] == '_') {
		return 0
	}
	n := 1
	for n < len(s) && (isLetter(s[n]) || isDigit(s[n]) || s[n] == '_') {
		n++
	}
	return n
}

func matchCompoundOperator(s string) int {
	for _, op := range compoundOperators {
		if strings.HasPrefix(s, op) {
			return len(op)
		}
	}
	return 0
}

func matchSingle(s string) int {
	if len(s) > 0 && strings.IndexByte(singleChars, s[0]) >= 0 {
		return 1
	}
	return 0
}

func isDigit(b byte) bool {
	return '0' <= b && b <= '9'
}

func isLetter(b byte) bool {
	return 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

// RuleNames returns the rule names in evaluation order
func RuleNames() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.name
	}
	return names
}

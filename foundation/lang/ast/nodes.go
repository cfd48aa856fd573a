// File: nodes.go
// Title: AST Node Definitions
// Description: Defines the syntax tree produced by the parser. The tree is a
//              closed sum type: every node implements Node, statements also
//              implement Stmt and expressions Expr. Each node owns its
//              children; there are no shared subtrees and no parent links.
// Author: msto63
// Version: v0.2.0
// Created: 2025-02-12
// Modified: 2025-03-02
//
// Change History:
// - 2025-02-12 v0.1.0: Initial node definitions
// - 2025-03-02 v0.2.0: Comment nodes, boolean literals

package ast

import (
	"fmt"

	"github.com/msto63/lumen/foundation/lang/token"
)

// NodeKind tags the variant of a node
type NodeKind int

const (
	KindProgram NodeKind = iota
	KindVariableDeclaration
	KindFunctionDeclaration
	KindBlock
	KindIfStatement
	KindWhileStatement
	KindRepeatStatement
	KindReturnStatement
	KindPrintStatement
	KindBreakStatement
	KindExpressionStatement
	KindComment
	KindBinaryExpression
	KindUnaryExpression
	KindFunctionCall
	KindIdentifier
	KindNumberLiteral
	KindStringLiteral
	KindBooleanLiteral
	KindNilLiteral
)

var nodeKindNames = [...]string{
	KindProgram:             "Program",
	KindVariableDeclaration: "VariableDeclaration",
	KindFunctionDeclaration: "FunctionDeclaration",
	KindBlock:               "Block",
	KindIfStatement:         "IfStatement",
	KindWhileStatement:      "WhileStatement",
	KindRepeatStatement:     "RepeatStatement",
	KindReturnStatement:     "ReturnStatement",
	KindPrintStatement:      "PrintStatement",
	KindBreakStatement:      "BreakStatement",
	KindExpressionStatement: "ExpressionStatement",
	KindComment:             "Comment",
	KindBinaryExpression:    "BinaryExpression",
	KindUnaryExpression:     "UnaryExpression",
	KindFunctionCall:        "FunctionCall",
	KindIdentifier:          "Identifier",
	KindNumberLiteral:       "NumberLiteral",
	KindStringLiteral:       "StringLiteral",
	KindBooleanLiteral:      "BooleanLiteral",
	KindNilLiteral:          "NilLiteral",
}

// String returns the name of the node kind
func (k NodeKind) String() string {
	if k >= 0 && int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// MarshalText renders the kind by name in JSON and YAML output
func (k NodeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// AllKinds returns every node kind in declaration order
func AllKinds() []NodeKind {
	kinds := make([]NodeKind, len(nodeKindNames))
	for i := range kinds {
		kinds[i] = NodeKind(i)
	}
	return kinds
}

// Node is implemented by every syntax tree node
type Node interface {
	// Kind returns the variant tag
	Kind() NodeKind

	// Position returns the position of the node's first token
	Position() token.Position

	// Accept dispatches to the matching Visit method of v
	Accept(v Visitor) interface{}

	// String returns the compact form produced by Format
	String() string
}

// Stmt is implemented by statement nodes
type Stmt interface {
	Node
	stmtNode()
}

// Expr is implemented by expression nodes
type Expr interface {
	Node
	exprNode()
}

// Program is the root of a parsed source text
type Program struct {
	Statements []Stmt
	Pos        token.Position
}

// VariableDeclaration is `<type-keyword> <name> = <init>;`
type VariableDeclaration struct {
	Keyword string // local, var, int, num, string, bool or boolean
	Name    string
	Init    Expr
	Pos     token.Position
}

// FunctionDeclaration is `function <name>(<params>) <body>`
type FunctionDeclaration struct {
	Keyword string // function or func
	Name    string
	Params  []string
	Body    *Block
	Pos     token.Position
}

// Block is a braced statement list
type Block struct {
	Statements []Stmt
	Pos        token.Position
}

// ElseIfClause is one `elseif <cond> <block>` arm of an IfStatement
type ElseIfClause struct {
	Condition Expr
	Body      *Block
	Pos       token.Position
}

// IfStatement has a then branch, any number of elseif arms and an optional
// else branch. Else is nil when absent.
type IfStatement struct {
	Condition Expr
	Then      *Block
	ElseIfs   []ElseIfClause
	Else      *Block
	Pos       token.Position
}

// WhileStatement is `while <cond> <body>`
type WhileStatement struct {
	Condition Expr
	Body      *Block
	Pos       token.Position
}

// RepeatStatement is `repeat <body> until <cond>`
type RepeatStatement struct {
	Body      *Block
	Condition Expr
	Pos       token.Position
}

// ReturnStatement carries an optional value; Value is nil for a bare return
type ReturnStatement struct {
	Value Expr
	Pos   token.Position
}

// PrintStatement is `print <value>;`
type PrintStatement struct {
	Value Expr
	Pos   token.Position
}

// BreakStatement is `break;`
type BreakStatement struct {
	Pos token.Position
}

// ExpressionStatement is an expression evaluated for its effect
type ExpressionStatement struct {
	Expr Expr
	Pos  token.Position
}

// Comment passes a comment token through to the tree
type Comment struct {
	Text string
	Pos  token.Position
}

// BinaryExpression is a left-folded infix operation
type BinaryExpression struct {
	Operator string
	Left     Expr
	Right    Expr
	Pos      token.Position
}

// UnaryExpression is a prefix operation: not, - or #
type UnaryExpression struct {
	Operator string
	Operand  Expr
	Pos      token.Position
}

// FunctionCall is `<callee>(<args>)`
type FunctionCall struct {
	Callee *Identifier
	Args   []Expr
	Pos    token.Position
}

// Identifier is a name reference
type Identifier struct {
	Name string
	Pos  token.Position
}

// NumberLiteral keeps the source text alongside the parsed value
type NumberLiteral struct {
	Raw string
	// Value is the nearest float64 to Raw. The parser rejects literals
	// beyond the float64 range, so Value is always finite.
	Value float64
	Pos   token.Position
}

// StringLiteral holds the text between the quotes
type StringLiteral struct {
	Value string
	Pos   token.Position
}

// BooleanLiteral is true or false
type BooleanLiteral struct {
	Value bool
	Pos   token.Position
}

// NilLiteral is nil or null; Raw records which
type NilLiteral struct {
	Raw string
	Pos token.Position
}

func (*Program) Kind() NodeKind             { return KindProgram }
func (*VariableDeclaration) Kind() NodeKind { return KindVariableDeclaration }
func (*FunctionDeclaration) Kind() NodeKind { return KindFunctionDeclaration }
func (*Block) Kind() NodeKind               { return KindBlock }
func (*IfStatement) Kind() NodeKind         { return KindIfStatement }
func (*WhileStatement) Kind() NodeKind      { return KindWhileStatement }
func (*RepeatStatement) Kind() NodeKind     { return KindRepeatStatement }
func (*ReturnStatement) Kind() NodeKind     { return KindReturnStatement }
func (*PrintStatement) Kind() NodeKind      { return KindPrintStatement }
func (*BreakStatement) Kind() NodeKind      { return KindBreakStatement }
func (*ExpressionStatement) Kind() NodeKind { return KindExpressionStatement }
func (*Comment) Kind() NodeKind             { return KindComment }
func (*BinaryExpression) Kind() NodeKind    { return KindBinaryExpression }
func (*UnaryExpression) Kind() NodeKind     { return KindUnaryExpression }
func (*FunctionCall) Kind() NodeKind        { return KindFunctionCall }
func (*Identifier) Kind() NodeKind          { return KindIdentifier }
func (*NumberLiteral) Kind() NodeKind       { return KindNumberLiteral }
func (*StringLiteral) Kind() NodeKind       { return KindStringLiteral }
func (*BooleanLiteral) Kind() NodeKind      { return KindBooleanLiteral }
func (*NilLiteral) Kind() NodeKind          { return KindNilLiteral }

func (n *Program) Position() token.Position             { return n.Pos }
func (n *VariableDeclaration) Position() token.Position { return n.Pos }
func (n *FunctionDeclaration) Position() token.Position { return n.Pos }
func (n *Block) Position() token.Position               { return n.Pos }
func (n *IfStatement) Position() token.Position         { return n.Pos }
func (n *WhileStatement) Position() token.Position      { return n.Pos }
func (n *RepeatStatement) Position() token.Position     { return n.Pos }
func (n *ReturnStatement) Position() token.Position     { return n.Pos }
func (n *PrintStatement) Position() token.Position      { return n.Pos }
func (n *BreakStatement) Position() token.Position      { return n.Pos }
func (n *ExpressionStatement) Position() token.Position { return n.Pos }
func (n *Comment) Position() token.Position             { return n.Pos }
func (n *BinaryExpression) Position() token.Position    { return n.Pos }
func (n *UnaryExpression) Position() token.Position     { return n.Pos }
func (n *FunctionCall) Position() token.Position        { return n.Pos }
func (n *Identifier) Position() token.Position          { return n.Pos }
func (n *NumberLiteral) Position() token.Position       { return n.Pos }
func (n *StringLiteral) Position() token.Position       { return n.Pos }
func (n *BooleanLiteral) Position() token.Position      { return n.Pos }
func (n *NilLiteral) Position() token.Position          { return n.Pos }

func (n *Program) Accept(v Visitor) interface{}             { return v.VisitProgram(n) }
func (n *VariableDeclaration) Accept(v Visitor) interface{} { return v.VisitVariableDeclaration(n) }
func (n *FunctionDeclaration) Accept(v Visitor) interface{} { return v.VisitFunctionDeclaration(n) }
func (n *Block) Accept(v Visitor) interface{}               { return v.VisitBlock(n) }
func (n *IfStatement) Accept(v Visitor) interface{}         { return v.VisitIfStatement(n) }
func (n *WhileStatement) Accept(v Visitor) interface{}      { return v.VisitWhileStatement(n) }
func (n *RepeatStatement) Accept(v Visitor) interface{}     { return v.VisitRepeatStatement(n) }
func (n *ReturnStatement) Accept(v Visitor) interface{}     { return v.VisitReturnStatement(n) }
func (n *PrintStatement) Accept(v Visitor) interface{}      { return v.VisitPrintStatement(n) }
func (n *BreakStatement) Accept(v Visitor) interface{}      { return v.VisitBreakStatement(n) }
func (n *ExpressionStatement) Accept(v Visitor) interface{} { return v.VisitExpressionStatement(n) }
func (n *Comment) Accept(v Visitor) interface{}             { return v.VisitComment(n) }
func (n *BinaryExpression) Accept(v Visitor) interface{}    { return v.VisitBinaryExpression(n) }
func (n *UnaryExpression) Accept(v Visitor) interface{}     { return v.VisitUnaryExpression(n) }
func (n *FunctionCall) Accept(v Visitor) interface{}        { return v.VisitFunctionCall(n) }
func (n *Identifier) Accept(v Visitor) interface{}          { return v.VisitIdentifier(n) }
func (n *NumberLiteral) Accept(v Visitor) interface{}       { return v.VisitNumberLiteral(n) }
func (n *StringLiteral) Accept(v Visitor) interface{}       { return v.VisitStringLiteral(n) }
func (n *BooleanLiteral) Accept(v Visitor) interface{}      { return v.VisitBooleanLiteral(n) }
func (n *NilLiteral) Accept(v Visitor) interface{}          { return v.VisitNilLiteral(n) }

func (n *Program) String() string             { return Format(n) }
func (n *VariableDeclaration) String() string { return Format(n) }
func (n *FunctionDeclaration) String() string { return Format(n) }
func (n *Block) String() string               { return Format(n) }
func (n *IfStatement) String() string         { return Format(n) }
func (n *WhileStatement) String() string      { return Format(n) }
func (n *RepeatStatement) String() string     { return Format(n) }
func (n *ReturnStatement) String() string     { return Format(n) }
func (n *PrintStatement) String() string      { return Format(n) }
func (n *BreakStatement) String() string      { return Format(n) }
func (n *ExpressionStatement) String() string { return Format(n) }
func (n *Comment) String() string             { return Format(n) }
func (n *BinaryExpression) String() string    { return Format(n) }
func (n *UnaryExpression) String() string     { return Format(n) }
func (n *FunctionCall) String() string        { return Format(n) }
func (n *Identifier) String() string          { return Format(n) }
func (n *NumberLiteral) String() string       { return Format(n) }
func (n *StringLiteral) String() string       { return Format(n) }
func (n *BooleanLiteral) String() string      { return Format(n) }
func (n *NilLiteral) String() string          { return Format(n) }

func (*VariableDeclaration) stmtNode() {}
func (*FunctionDeclaration) stmtNode() {}
func (*Block) stmtNode()               {}
func (*IfStatement) stmtNode()         {}
func (*WhileStatement) stmtNode()      {}
func (*RepeatStatement) stmtNode()     {}
func (*ReturnStatement) stmtNode()     {}
func (*PrintStatement) stmtNode()      {}
func (*BreakStatement) stmtNode()      {}
func (*ExpressionStatement) stmtNode() {}
func (*Comment) stmtNode()             {}

func (*BinaryExpression) exprNode() {}
func (*UnaryExpression) exprNode()  {}
func (*FunctionCall) exprNode()     {}
func (*Identifier) exprNode()       {}
func (*NumberLiteral) exprNode()    {}
func (*StringLiteral) exprNode()    {}
func (*BooleanLiteral) exprNode()   {}
func (*NilLiteral) exprNode()       {}

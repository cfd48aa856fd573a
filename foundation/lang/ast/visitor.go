// File: visitor.go
// Title: AST Visitor and Traversal
// Description: Typed double dispatch over the node variants plus generic
//              depth-first traversal. Visitors that only care about a few
//              variants embed BaseVisitor; traversal is done by Inspect so
//              that overridden methods are honored for every child.
// Author: msto63
// Version: v0.2.0
// Created: 2025-02-12
// Modified: 2025-03-02
//
// Change History:
// - 2025-02-12 v0.1.0: Initial visitor pattern implementation
// - 2025-03-02 v0.2.0: Inspect based traversal

package ast

// Visitor has one method per node variant
type Visitor interface {
	VisitProgram(n *Program) interface{}
	VisitVariableDeclaration(n *VariableDeclaration) interface{}
	VisitFunctionDeclaration(n *FunctionDeclaration) interface{}
	VisitBlock(n *Block) interface{}
	VisitIfStatement(n *IfStatement) interface{}
	VisitWhileStatement(n *WhileStatement) interface{}
	VisitRepeatStatement(n *RepeatStatement) interface{}
	VisitReturnStatement(n *ReturnStatement) interface{}
	VisitPrintStatement(n *PrintStatement) interface{}
	VisitBreakStatement(n *BreakStatement) interface{}
	VisitExpressionStatement(n *ExpressionStatement) interface{}
	VisitComment(n *Comment) interface{}

	VisitBinaryExpression(n *BinaryExpression) interface{}
	VisitUnaryExpression(n *UnaryExpression) interface{}
	VisitFunctionCall(n *FunctionCall) interface{}
	VisitIdentifier(n *Identifier) interface{}
	VisitNumberLiteral(n *NumberLiteral) interface{}
	VisitStringLiteral(n *StringLiteral) interface{}
	VisitBooleanLiteral(n *BooleanLiteral) interface{}
	VisitNilLiteral(n *NilLiteral) interface{}
}

// BaseVisitor returns nil for every variant and does not descend.
// Embed it in visitors that handle a subset of the variants.
type BaseVisitor struct{}

func (BaseVisitor) VisitProgram(*Program) interface{}                         { return nil }
func (BaseVisitor) VisitVariableDeclaration(*VariableDeclaration) interface{} { return nil }
func (BaseVisitor) VisitFunctionDeclaration(*FunctionDeclaration) interface{} { return nil }
func (BaseVisitor) VisitBlock(*Block) interface{}                             { return nil }
func (BaseVisitor) VisitIfStatement(*IfStatement) interface{}                 { return nil }
func (BaseVisitor) VisitWhileStatement(*WhileStatement) interface{}           { return nil }
func (BaseVisitor) VisitRepeatStatement(*RepeatStatement) interface{}         { return nil }
func (BaseVisitor) VisitReturnStatement(*ReturnStatement) interface{}         { return nil }
func (BaseVisitor) VisitPrintStatement(*PrintStatement) interface{}           { return nil }
func (BaseVisitor) VisitBreakStatement(*BreakStatement) interface{}           { return nil }
func (BaseVisitor) VisitExpressionStatement(*ExpressionStatement) interface{} { return nil }
func (BaseVisitor) VisitComment(*Comment) interface{}                         { return nil }
func (BaseVisitor) VisitBinaryExpression(*BinaryExpression) interface{}       { return nil }
func (BaseVisitor) VisitUnaryExpression(*UnaryExpression) interface{}         { return nil }
func (BaseVisitor) VisitFunctionCall(*FunctionCall) interface{}               { return nil }
func (BaseVisitor) VisitIdentifier(*Identifier) interface{}                   { return nil }
func (BaseVisitor) VisitNumberLiteral(*NumberLiteral) interface{}             { return nil }
func (BaseVisitor) VisitStringLiteral(*StringLiteral) interface{}             { return nil }
func (BaseVisitor) VisitBooleanLiteral(*BooleanLiteral) interface{}           { return nil }
func (BaseVisitor) VisitNilLiteral(*NilLiteral) interface{}                   { return nil }

// Children returns the direct children of n in source order. Absent
// optional children are omitted. ElseIf arms contribute their condition
// followed by their block.
func Children(n Node) []Node {
	switch n := n.(type) {
	case *Program:
		return stmts(n.Statements)
	case *Block:
		return stmts(n.Statements)
	case *VariableDeclaration:
		return nonNil(n.Init)
	case *FunctionDeclaration:
		if n.Body == nil {
			return nil
		}
		return []Node{n.Body}
	case *IfStatement:
		out := nonNil(n.Condition)
		if n.Then != nil {
			out = append(out, n.Then)
		}
		for _, arm := range n.ElseIfs {
			out = append(out, nonNil(arm.Condition)...)
			if arm.Body != nil {
				out = append(out, arm.Body)
			}
		}
		if n.Else != nil {
			out = append(out, n.Else)
		}
		return out
	case *WhileStatement:
		out := nonNil(n.Condition)
		if n.Body != nil {
			out = append(out, n.Body)
		}
		return out
	case *RepeatStatement:
		var out []Node
		if n.Body != nil {
			out = append(out, n.Body)
		}
		return append(out, nonNil(n.Condition)...)
	case *ReturnStatement:
		return nonNil(n.Value)
	case *PrintStatement:
		return nonNil(n.Value)
	case *ExpressionStatement:
		return nonNil(n.Expr)
	case *BinaryExpression:
		return append(nonNil(n.Left), nonNil(n.Right)...)
	case *UnaryExpression:
		return nonNil(n.Operand)
	case *FunctionCall:
		var out []Node
		if n.Callee != nil {
			out = append(out, n.Callee)
		}
		for _, arg := range n.Args {
			out = append(out, nonNil(arg)...)
		}
		return out
	default:
		return nil
	}
}

// Inspect traverses the tree rooted at n depth-first in source order. It
// calls f for every node; if f returns false the node's children are
// skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, child := range Children(n) {
		Inspect(child, f)
	}
}

// Walk calls n.Accept(v) for n and every descendant in depth-first order
func Walk(v Visitor, n Node) {
	Inspect(n, func(node Node) bool {
		node.Accept(v)
		return true
	})
}

func stmts(list []Stmt) []Node {
	out := make([]Node, 0, len(list))
	for _, s := range list {
		out = append(out, nonNil(s)...)
	}
	return out
}

func nonNil(n Node) []Node {
	if n == nil {
		return nil
	}
	return []Node{n}
}

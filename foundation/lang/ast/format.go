// File: format.go
// Title: AST Rendering
// Description: Renders syntax trees in three forms: a compact one-line form
//              such as BinaryExpression('+', NumberLiteral(1), Identifier(x)),
//              an indented tree for terminals, and a generic map for JSON and
//              YAML encoders.
// Author: msto63
// Version: v0.2.0
// Created: 2025-02-12
// Modified: 2025-03-02
//
// Change History:
// - 2025-02-12 v0.1.0: Compact and tree rendering
// - 2025-03-02 v0.2.0: Map rendering for structured output

package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders n in the compact one-line form
func Format(n Node) string {
	if n == nil {
		return "<nil>"
	}
	return n.Accept(compactVisitor{}).(string)
}

type compactVisitor struct{}

func (c compactVisitor) expr(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	return e.Accept(c).(string)
}

func (c compactVisitor) list(statements []Stmt) string {
	parts := make([]string, len(statements))
	for i, s := range statements {
		parts[i] = s.Accept(c).(string)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (c compactVisitor) block(b *Block) string {
	if b == nil {
		return "none"
	}
	return c.list(b.Statements)
}

func (c compactVisitor) VisitProgram(n *Program) interface{} {
	return "Program(" + c.list(n.Statements) + ")"
}

func (c compactVisitor) VisitVariableDeclaration(n *VariableDeclaration) interface{} {
	return fmt.Sprintf("VariableDeclaration(%s, %s, %s)", n.Keyword, n.Name, c.expr(n.Init))
}

func (c compactVisitor) VisitFunctionDeclaration(n *FunctionDeclaration) interface{} {
	return fmt.Sprintf("FunctionDeclaration(%s, [%s], %s)", n.Name, strings.Join(n.Params, ", "), c.block(n.Body))
}

func (c compactVisitor) VisitBlock(n *Block) interface{} {
	return "Block(" + c.list(n.Statements) + ")"
}

func (c compactVisitor) VisitIfStatement(n *IfStatement) interface{} {
	arms := make([]string, len(n.ElseIfs))
	for i, arm := range n.ElseIfs {
		arms[i] = fmt.Sprintf("ElseIf(%s, %s)", c.expr(arm.Condition), c.block(arm.Body))
	}
	return fmt.Sprintf("IfStatement(condition=%s, thenBlock=%s, elseifClauses=[%s], elseBlock=%s)",
		c.expr(n.Condition), c.block(n.Then), strings.Join(arms, ", "), c.block(n.Else))
}

func (c compactVisitor) VisitWhileStatement(n *WhileStatement) interface{} {
	return fmt.Sprintf("WhileStatement(condition=%s, body=%s)", c.expr(n.Condition), c.block(n.Body))
}

func (c compactVisitor) VisitRepeatStatement(n *RepeatStatement) interface{} {
	return fmt.Sprintf("RepeatStatement(body=%s, condition=%s)", c.block(n.Body), c.expr(n.Condition))
}

func (c compactVisitor) VisitReturnStatement(n *ReturnStatement) interface{} {
	if n.Value == nil {
		return "ReturnStatement()"
	}
	return "ReturnStatement(" + c.expr(n.Value) + ")"
}

func (c compactVisitor) VisitPrintStatement(n *PrintStatement) interface{} {
	return "PrintStatement(" + c.expr(n.Value) + ")"
}

func (c compactVisitor) VisitBreakStatement(*BreakStatement) interface{} {
	return "BreakStatement"
}

func (c compactVisitor) VisitExpressionStatement(n *ExpressionStatement) interface{} {
	return "ExpressionStatement(" + c.expr(n.Expr) + ")"
}

func (c compactVisitor) VisitComment(n *Comment) interface{} {
	return "Comment(" + strconv.Quote(n.Text) + ")"
}

func (c compactVisitor) VisitBinaryExpression(n *BinaryExpression) interface{} {
	return fmt.Sprintf("BinaryExpression('%s', %s, %s)", n.Operator, c.expr(n.Left), c.expr(n.Right))
}

func (c compactVisitor) VisitUnaryExpression(n *UnaryExpression) interface{} {
	return fmt.Sprintf("UnaryExpression('%s', %s)", n.Operator, c.expr(n.Operand))
}

func (c compactVisitor) VisitFunctionCall(n *FunctionCall) interface{} {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = c.expr(a)
	}
	callee := "<nil>"
	if n.Callee != nil {
		callee = c.expr(n.Callee)
	}
	return fmt.Sprintf("FunctionCall(%s, [%s])", callee, strings.Join(args, ", "))
}

func (c compactVisitor) VisitIdentifier(n *Identifier) interface{} {
	return "Identifier(" + n.Name + ")"
}

func (c compactVisitor) VisitNumberLiteral(n *NumberLiteral) interface{} {
	return "NumberLiteral(" + n.Raw + ")"
}

func (c compactVisitor) VisitStringLiteral(n *StringLiteral) interface{} {
	return "StringLiteral(" + strconv.Quote(n.Value) + ")"
}

func (c compactVisitor) VisitBooleanLiteral(n *BooleanLiteral) interface{} {
	return "BooleanLiteral(" + strconv.FormatBool(n.Value) + ")"
}

func (c compactVisitor) VisitNilLiteral(*NilLiteral) interface{} {
	return "NilLiteral"
}

// FormatTree renders n as an indented tree, one node per line with its
// position, for example:
//
//	Program @1:1
//	  PrintStatement @1:1
//	    Identifier x @1:7
func FormatTree(n Node) string {
	var b strings.Builder
	writeTree(&b, n, 0)
	return b.String()
}

func writeTree(b *strings.Builder, n Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(label(n))
	b.WriteString(" @")
	b.WriteString(n.Position().String())
	b.WriteByte('\n')
	for _, child := range Children(n) {
		writeTree(b, child, depth+1)
	}
}

// label is the node kind followed by its scalar attributes
func label(n Node) string {
	kind := n.Kind().String()
	switch n := n.(type) {
	case *VariableDeclaration:
		return fmt.Sprintf("%s %s %s", kind, n.Keyword, n.Name)
	case *FunctionDeclaration:
		return fmt.Sprintf("%s %s(%s)", kind, n.Name, strings.Join(n.Params, ", "))
	case *Comment:
		return kind + " " + strconv.Quote(n.Text)
	case *BinaryExpression:
		return kind + " " + n.Operator
	case *UnaryExpression:
		return kind + " " + n.Operator
	case *FunctionCall:
		if n.Callee != nil {
			return kind + " " + n.Callee.Name
		}
	case *Identifier:
		return kind + " " + n.Name
	case *NumberLiteral:
		return kind + " " + n.Raw
	case *StringLiteral:
		return kind + " " + strconv.Quote(n.Value)
	case *BooleanLiteral:
		return kind + " " + strconv.FormatBool(n.Value)
	case *NilLiteral:
		return kind + " " + n.Raw
	}
	return kind
}

// ToMap converts n into nested maps and slices suitable for JSON or YAML
// encoding. Every node map carries "type", "line" and "column".
func ToMap(n Node) map[string]interface{} {
	if n == nil {
		return nil
	}
	return n.Accept(mapVisitor{}).(map[string]interface{})
}

type mapVisitor struct{}

func (m mapVisitor) node(n Node, fields map[string]interface{}) map[string]interface{} {
	pos := n.Position()
	fields["type"] = n.Kind().String()
	fields["line"] = pos.Line
	fields["column"] = pos.Column
	return fields
}

func (m mapVisitor) expr(e Expr) interface{} {
	if e == nil {
		return nil
	}
	return e.Accept(m)
}

func (m mapVisitor) list(statements []Stmt) []interface{} {
	out := make([]interface{}, len(statements))
	for i, s := range statements {
		out[i] = s.Accept(m)
	}
	return out
}

func (m mapVisitor) block(b *Block) interface{} {
	if b == nil {
		return nil
	}
	return b.Accept(m)
}

func (m mapVisitor) VisitProgram(n *Program) interface{} {
	return m.node(n, map[string]interface{}{"body": m.list(n.Statements)})
}

func (m mapVisitor) VisitVariableDeclaration(n *VariableDeclaration) interface{} {
	return m.node(n, map[string]interface{}{
		"keyword": n.Keyword,
		"name":    n.Name,
		"init":    m.expr(n.Init),
	})
}

func (m mapVisitor) VisitFunctionDeclaration(n *FunctionDeclaration) interface{} {
	params := make([]interface{}, len(n.Params))
	for i, p := range n.Params {
		params[i] = p
	}
	return m.node(n, map[string]interface{}{
		"keyword": n.Keyword,
		"name":    n.Name,
		"params":  params,
		"body":    m.block(n.Body),
	})
}

func (m mapVisitor) VisitBlock(n *Block) interface{} {
	return m.node(n, map[string]interface{}{"body": m.list(n.Statements)})
}

func (m mapVisitor) VisitIfStatement(n *IfStatement) interface{} {
	arms := make([]interface{}, len(n.ElseIfs))
	for i, arm := range n.ElseIfs {
		arms[i] = map[string]interface{}{
			"condition": m.expr(arm.Condition),
			"body":      m.block(arm.Body),
			"line":      arm.Pos.Line,
			"column":    arm.Pos.Column,
		}
	}
	return m.node(n, map[string]interface{}{
		"condition": m.expr(n.Condition),
		"then":      m.block(n.Then),
		"elseifs":   arms,
		"else":      m.block(n.Else),
	})
}

func (m mapVisitor) VisitWhileStatement(n *WhileStatement) interface{} {
	return m.node(n, map[string]interface{}{
		"condition": m.expr(n.Condition),
		"body":      m.block(n.Body),
	})
}

func (m mapVisitor) VisitRepeatStatement(n *RepeatStatement) interface{} {
	return m.node(n, map[string]interface{}{
		"body":      m.block(n.Body),
		"condition": m.expr(n.Condition),
	})
}

func (m mapVisitor) VisitReturnStatement(n *ReturnStatement) interface{} {
	return m.node(n, map[string]interface{}{"value": m.expr(n.Value)})
}

func (m mapVisitor) VisitPrintStatement(n *PrintStatement) interface{} {
	return m.node(n, map[string]interface{}{"value": m.expr(n.Value)})
}

func (m mapVisitor) VisitBreakStatement(n *BreakStatement) interface{} {
	return m.node(n, map[string]interface{}{})
}

func (m mapVisitor) VisitExpressionStatement(n *ExpressionStatement) interface{} {
	return m.node(n, map[string]interface{}{"expression": m.expr(n.Expr)})
}

func (m mapVisitor) VisitComment(n *Comment) interface{} {
	return m.node(n, map[string]interface{}{"text": n.Text})
}

func (m mapVisitor) VisitBinaryExpression(n *BinaryExpression) interface{} {
	return m.node(n, map[string]interface{}{
		"operator": n.Operator,
		"left":     m.expr(n.Left),
		"right":    m.expr(n.Right),
	})
}

func (m mapVisitor) VisitUnaryExpression(n *UnaryExpression) interface{} {
	return m.node(n, map[string]interface{}{
		"operator": n.Operator,
		"operand":  m.expr(n.Operand),
	})
}

func (m mapVisitor) VisitFunctionCall(n *FunctionCall) interface{} {
	args := make([]interface{}, len(n.Args))
	for i, a := range n.Args {
		args[i] = m.expr(a)
	}
	var callee interface{}
	if n.Callee != nil {
		callee = n.Callee.Accept(m)
	}
	return m.node(n, map[string]interface{}{"callee": callee, "arguments": args})
}

func (m mapVisitor) VisitIdentifier(n *Identifier) interface{} {
	return m.node(n, map[string]interface{}{"name": n.Name})
}

func (m mapVisitor) VisitNumberLiteral(n *NumberLiteral) interface{} {
	return m.node(n, map[string]interface{}{"raw": n.Raw, "value": n.Value})
}

func (m mapVisitor) VisitStringLiteral(n *StringLiteral) interface{} {
	return m.node(n, map[string]interface{}{"value": n.Value})
}

func (m mapVisitor) VisitBooleanLiteral(n *BooleanLiteral) interface{} {
	return m.node(n, map[string]interface{}{"value": n.Value})
}

func (m mapVisitor) VisitNilLiteral(n *NilLiteral) interface{} {
	return m.node(n, map[string]interface{}{"raw": n.Raw})
}

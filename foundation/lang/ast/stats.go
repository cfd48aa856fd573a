// File: stats.go
// Title: AST Statistics and Structural Validation
// Description: Collects node counts, declared names and call sites from a
//              tree, and checks hand-built trees for the structural
//              guarantees the parser provides.
// Author: msto63
// Version: v0.2.0
// Created: 2025-02-12
// Modified: 2025-03-02
//
// Change History:
// - 2025-02-12 v0.1.0: Collector visitor
// - 2025-03-02 v0.2.0: Depth tracking, structural validation

package ast

import (
	"errors"
	"fmt"
	"sort"
)

// Stats summarizes a syntax tree
type Stats struct {
	Nodes     int              `json:"nodes" yaml:"nodes"`
	MaxDepth  int              `json:"max_depth" yaml:"max_depth"`
	ByKind    map[NodeKind]int `json:"by_kind" yaml:"by_kind"`
	Functions []string         `json:"functions" yaml:"functions"`
	Variables []string         `json:"variables" yaml:"variables"`
	Calls     map[string]int   `json:"calls" yaml:"calls"`
	Comments  int              `json:"comments" yaml:"comments"`

	declared map[string]bool
}

// Collect walks n and returns its statistics. Function and variable names
// are listed in order of first declaration.
func Collect(n Node) *Stats {
	c := &collector{stats: &Stats{
		ByKind:   make(map[NodeKind]int),
		Calls:    make(map[string]int),
		declared: make(map[string]bool),
	}}
	c.walk(n, 1)
	return c.stats
}

// CalledNames returns the names of all called functions in sorted order
func (s *Stats) CalledNames() []string {
	names := make([]string, 0, len(s.Calls))
	for name := range s.Calls {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Undeclared returns called names that no function declaration in the same
// tree introduces, sorted
func (s *Stats) Undeclared() []string {
	declared := make(map[string]bool, len(s.Functions))
	for _, f := range s.Functions {
		declared[f] = true
	}
	var out []string
	for _, name := range s.CalledNames() {
		if !declared[name] {
			out = append(out, name)
		}
	}
	return out
}

type collector struct {
	BaseVisitor
	stats *Stats
}

func (c *collector) walk(n Node, depth int) {
	if n == nil {
		return
	}
	c.stats.Nodes++
	c.stats.ByKind[n.Kind()]++
	if depth > c.stats.MaxDepth {
		c.stats.MaxDepth = depth
	}
	n.Accept(c)
	for _, child := range Children(n) {
		c.walk(child, depth+1)
	}
}

func (c *collector) VisitFunctionDeclaration(n *FunctionDeclaration) interface{} {
	c.declare(&c.stats.Functions, "func:", n.Name)
	return nil
}

func (c *collector) VisitVariableDeclaration(n *VariableDeclaration) interface{} {
	c.declare(&c.stats.Variables, "var:", n.Name)
	return nil
}

func (c *collector) VisitFunctionCall(n *FunctionCall) interface{} {
	if n.Callee != nil {
		c.stats.Calls[n.Callee.Name]++
	}
	return nil
}

func (c *collector) VisitComment(*Comment) interface{} {
	c.stats.Comments++
	return nil
}

func (c *collector) declare(list *[]string, namespace, name string) {
	if c.stats.declared[namespace+name] {
		return
	}
	c.stats.declared[namespace+name] = true
	*list = append(*list, name)
}

// Validate checks that every required child is present, that operators
// belong to their level and that names are non-empty. Trees returned by the
// parser always validate; the check is meant for trees built by hand.
func Validate(n Node) error {
	var errs []error
	Inspect(n, func(node Node) bool {
		if err := validateNode(node); err != nil {
			errs = append(errs, fmt.Errorf("%s at %s: %w", node.Kind(), node.Position(), err))
		}
		return true
	})
	return errors.Join(errs...)
}

var (
	binaryOperators = map[string]bool{
		"or": true, "and": true, "==": true, "!=": true,
		"<": true, ">": true, "<=": true, ">=": true,
		"+": true, "-": true, "..": true,
		"*": true, "/": true, "//": true, "%": true, "^": true,
	}
	unaryOperators = map[string]bool{"not": true, "-": true, "#": true}
)

func validateNode(n Node) error {
	switch n := n.(type) {
	case *VariableDeclaration:
		if n.Name == "" {
			return errors.New("missing name")
		}
		if n.Init == nil {
			return errors.New("missing initializer")
		}
	case *FunctionDeclaration:
		if n.Name == "" {
			return errors.New("missing name")
		}
		if n.Body == nil {
			return errors.New("missing body")
		}
		seen := make(map[string]bool, len(n.Params))
		for _, p := range n.Params {
			if seen[p] {
				return fmt.Errorf("duplicate parameter %q", p)
			}
			seen[p] = true
		}
	case *IfStatement:
		if n.Condition == nil || n.Then == nil {
			return errors.New("missing condition or then block")
		}
		for _, arm := range n.ElseIfs {
			if arm.Condition == nil || arm.Body == nil {
				return errors.New("incomplete elseif clause")
			}
		}
	case *WhileStatement:
		if n.Condition == nil || n.Body == nil {
			return errors.New("missing condition or body")
		}
	case *RepeatStatement:
		if n.Condition == nil || n.Body == nil {
			return errors.New("missing condition or body")
		}
	case *PrintStatement:
		if n.Value == nil {
			return errors.New("missing value")
		}
	case *ExpressionStatement:
		if n.Expr == nil {
			return errors.New("missing expression")
		}
	case *BinaryExpression:
		if !binaryOperators[n.Operator] {
			return fmt.Errorf("unknown binary operator %q", n.Operator)
		}
		if n.Left == nil || n.Right == nil {
			return errors.New("missing operand")
		}
	case *UnaryExpression:
		if !unaryOperators[n.Operator] {
			return fmt.Errorf("unknown unary operator %q", n.Operator)
		}
		if n.Operand == nil {
			return errors.New("missing operand")
		}
	case *FunctionCall:
		if n.Callee == nil || n.Callee.Name == "" {
			return errors.New("missing callee")
		}
	case *Identifier:
		if n.Name == "" {
			return errors.New("empty name")
		}
	}
	return nil
}

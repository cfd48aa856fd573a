// Package ast defines the syntax tree of the lumen scripting language.
//
// Package: ast
// Title: lumen Abstract Syntax Tree
// Description: Node variants, visitor dispatch, traversal and rendering. The
//              parser is the only producer of trees; consumers read them and
//              never modify them.
// Author: msto63
// Version: v0.2.0
// Created: 2025-02-12
// Modified: 2025-03-02
//
// Change History:
// - 2025-02-12 v0.1.0: Initial node model
// - 2025-03-02 v0.2.0: Comment nodes, statistics, map rendering
//
// Usage:
//   prog, err := parser.Parse(tokens)
//   if err != nil { ... }
//
//   fmt.Println(ast.Format(prog))     // Program([PrintStatement(Identifier(x))])
//   fmt.Print(ast.FormatTree(prog))   // indented, one node per line
//
//   ast.Inspect(prog, func(n ast.Node) bool {
//     if call, ok := n.(*ast.FunctionCall); ok {
//       fmt.Println(call.Callee.Name)
//     }
//     return true
//   })
package ast

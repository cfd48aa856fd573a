// Package error provides structured error handling for the lumen toolchain.
//
// Package: error
// Title: lumen Error Handling
// Description: Structured errors carrying a code, a severity, an operation
//              name and free-form details. Lexical and syntax diagnostics are
//              wrapped in this type at the engine boundary so that the CLI,
//              the REPL and the logger can treat every failure uniformly.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2025-03-02 v0.2.0: Language codes, exit codes, errors.As based helpers
//
// Usage:
//   import lerror "github.com/msto63/lumen/foundation/core/error"
//
//   err := lerror.Wrap(lexErr, "tokenize failed").
//     WithCode(lerror.CodeLexicalError).
//     WithOperation("lang.Tokenize").
//     WithDetail("line", 3)
//
//   if lerror.HasCode(err, lerror.CodeSyntaxError) {
//     // report as a diagnostic
//   }
package error

// Package log provides structured logging for the lumen toolchain.
//
// Package: log
// Title: lumen Structured Logging
// Description: Structured logger with levels, key/value fields, correlation
//              IDs and json, text, console and logfmt output. Loggers are
//              immutable: every With* call returns a configured copy, so a
//              component can derive its own logger without affecting others.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2025-03-02 v0.2.0: Dropped async mode and request/user context
//
// Usage:
//   import llog "github.com/msto63/lumen/foundation/core/log"
//
//   logger := llog.New().
//     WithLevel(llog.LevelDebug).
//     WithFormat(llog.FormatText).
//     WithField("component", "lang-engine")
//
//   logger.Debug("Tokenizing source", llog.Fields{"bytes": len(src)})
//
//   timer := logger.StartTimer("parse")
//   // ... parse
//   timer.Stop()
package log

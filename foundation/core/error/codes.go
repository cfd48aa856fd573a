// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used across the lumen toolchain. Codes
//              classify a failure for logging, for the CLI exit status and for
//              the REPL status line.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2025-03-02 v0.2.0: Language and IO codes, exit code mapping

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeTimeout      Code = "TIMEOUT"

	// Language front end
	CodeLexicalError Code = "LEXICAL_ERROR"
	CodeSyntaxError  Code = "SYNTAX_ERROR"

	// Files and watching
	CodeIOError    Code = "IO_ERROR"
	CodeWatchError Code = "WATCH_ERROR"

	// Configuration and environment
	CodeConfigError      Code = "CONFIG_ERROR"
	CodeMissingConfig    Code = "MISSING_CONFIG"
	CodeInvalidConfig    Code = "INVALID_CONFIG"
	CodeEnvironmentError Code = "ENVIRONMENT_ERROR"

	// Validation
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeRequiredField    Code = "REQUIRED_FIELD"
	CodeInvalidFormat    Code = "INVALID_FORMAT"
	CodeValueOutOfRange  Code = "VALUE_OUT_OF_RANGE"
	CodeInvalidLength    Code = "INVALID_LENGTH"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeTimeout,
		CodeLexicalError, CodeSyntaxError,
		CodeIOError, CodeWatchError,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig, CodeEnvironmentError,
		CodeValidationFailed, CodeRequiredField, CodeInvalidFormat, CodeValueOutOfRange, CodeInvalidLength:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeLexicalError, CodeSyntaxError:
		return "language"
	case CodeIOError, CodeWatchError, CodeNotFound:
		return "io"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig, CodeEnvironmentError:
		return "configuration"
	case CodeValidationFailed, CodeRequiredField, CodeInvalidFormat, CodeValueOutOfRange, CodeInvalidLength:
		return "validation"
	default:
		return "generic"
	}
}

// ExitCode returns the process exit status the CLI uses for this code.
// Diagnostics in the checked source exit with 1, usage and configuration
// problems with 2, file system problems with 3.
func (c Code) ExitCode() int {
	switch c.Category() {
	case "language":
		return 1
	case "configuration", "validation":
		return 2
	case "io":
		return 3
	default:
		return 1
	}
}

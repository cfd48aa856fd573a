// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors. The logger maps severities
//              onto log levels so that a syntax error in user input does not
//              show up as an operational error.
// Author: msto63
// Version: v0.1.0
// Created: 2025-01-24
// Modified: 2025-01-24
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with severity levels

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow indicates a problem in the user's input, such as a
	// syntax error in a script
	SeverityLow Severity = iota

	// SeverityMedium indicates an error that affects functionality but has workarounds
	SeverityMedium

	// SeverityHigh indicates a serious error, such as an unreadable config file
	SeverityHigh

	// SeverityCritical indicates an error that makes the tool unusable
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeEnvironmentError, CodeInternal:
		return SeverityCritical

	case CodeConfigError, CodeInvalidConfig, CodeMissingConfig, CodeWatchError:
		return SeverityHigh

	case CodeIOError, CodeTimeout:
		return SeverityMedium

	case CodeLexicalError, CodeSyntaxError,
		CodeInvalidInput, CodeNotFound, CodeValidationFailed, CodeRequiredField,
		CodeInvalidFormat, CodeValueOutOfRange, CodeInvalidLength:
		return SeverityLow

	default:
		return SeverityMedium
	}
}

package oaserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrParse indicates a parsing failure occurred.
	ErrParse = errors.New("parse error")

	// ErrReference indicates a reference resolution failure.
	ErrReference = errors.New("reference error")

	// ErrExternalReference indicates a $ref pointing outside the containing document.
	ErrExternalReference = errors.New("external reference")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")

	// ErrLoad indicates a document could not be loaded.
	ErrLoad = errors.New("load error")

	// ErrNotFound indicates the requested document does not exist at the source.
	ErrNotFound = errors.New("document not found")

	// ErrAuth indicates the source rejected the supplied credentials.
	ErrAuth = errors.New("authentication failed")

	// ErrNetwork indicates the source could not be reached.
	ErrNetwork = errors.New("network failure")
)

// ParseError represents a failure to parse an API description document.
// This includes YAML/JSON deserialization errors and structural issues.
type ParseError struct {
	// Path is the file path or source identifier
	Path string
	// Line is the line number where the error occurred (0 if unknown)
	Line int
	// Column is the column number where the error occurred (0 if unknown)
	Column int
	// Message describes the parsing failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Path != "" {
		msg += " in " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(" at line %d", e.Line)
		if e.Column > 0 {
			msg += fmt.Sprintf(", column %d", e.Column)
		}
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// ReferenceError represents a failure to resolve a $ref.
type ReferenceError struct {
	// Ref is the reference string that failed to resolve
	Ref string
	// IsExternal is true if the reference targets another document
	IsExternal bool
	// Message provides additional context about the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ReferenceError) Error() string {
	msg := "reference error"
	if e.IsExternal {
		msg = "external reference"
	}
	if e.Ref != "" {
		msg += ": " + e.Ref
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ReferenceError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrReference, and also ErrExternalReference when IsExternal is set.
func (e *ReferenceError) Is(target error) bool {
	if target == ErrReference {
		return true
	}
	return target == ErrExternalReference && e.IsExternal
}

// ConfigError represents an invalid configuration or input.
// This includes invalid options, missing required inputs, and conflicting settings.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// LoadErrorKind classifies why a document could not be loaded.
type LoadErrorKind int

const (
	// LoadErrorRead indicates a local I/O failure.
	LoadErrorRead LoadErrorKind = iota
	// LoadErrorNotFound indicates the document does not exist at the source.
	LoadErrorNotFound
	// LoadErrorAuth indicates the source rejected the credentials.
	LoadErrorAuth
	// LoadErrorNetwork indicates the source could not be reached or throttled the request.
	LoadErrorNetwork
	// LoadErrorParse indicates the document was retrieved but could not be decoded.
	LoadErrorParse
)

// String returns the string representation of the kind.
func (k LoadErrorKind) String() string {
	switch k {
	case LoadErrorRead:
		return "read"
	case LoadErrorNotFound:
		return "not found"
	case LoadErrorAuth:
		return "auth"
	case LoadErrorNetwork:
		return "network"
	case LoadErrorParse:
		return "parse"
	default:
		return "unknown"
	}
}

// LoadError represents a failure to acquire a document from a local or remote source.
type LoadError struct {
	// Source identifies where the document was loaded from (file path or repo location)
	Source string
	// Kind classifies the failure
	Kind LoadErrorKind
	// Message provides additional context
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *LoadError) Error() string {
	msg := "load error (" + e.Kind.String() + ")"
	if e.Source != "" {
		msg += " for " + e.Source
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
// Matches ErrLoad, plus the sentinel matching the kind:
// ErrNotFound, ErrAuth, ErrNetwork or ErrParse.
func (e *LoadError) Is(target error) bool {
	switch target {
	case ErrLoad:
		return true
	case ErrNotFound:
		return e.Kind == LoadErrorNotFound
	case ErrAuth:
		return e.Kind == LoadErrorAuth
	case ErrNetwork:
		return e.Kind == LoadErrorNetwork
	case ErrParse:
		return e.Kind == LoadErrorParse
	}
	return false
}

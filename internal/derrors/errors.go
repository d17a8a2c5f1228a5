// Package derrors provides the typed errors used across mcfcomplete.
// Every error carries a stable code so callers (and the HTTP API) can
// tell a malformed grammar apart from a missing file or a bad config.
package derrors

import (
	"fmt"
)

// Error codes
const (
	CodeGrammar       = "GRAMMAR_ERROR"
	CodeLoad          = "LOAD_ERROR"
	CodeConfiguration = "CONFIG_ERROR"
	CodeValidation    = "VALIDATION_ERROR"
	CodeNotFound      = "NOT_FOUND"
)

// CodedError is the base interface for all mcfcomplete errors
type CodedError interface {
	error
	// Code returns a unique error code for programmatic error handling
	Code() string
}

// baseError provides common functionality for all mcfcomplete errors
type baseError struct {
	code    string
	message string
	cause   error
}

func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *baseError) Code() string {
	return e.code
}

func (e *baseError) Unwrap() error {
	return e.cause
}

// GrammarError reports a grammar tree that cannot be traversed, such as a
// redirect cycle or a redirect pointing at a missing node.
type GrammarError struct {
	baseError
	Node string
}

// NewGrammarError creates a new grammar integrity error
func NewGrammarError(node string, message string) *GrammarError {
	return &GrammarError{
		baseError: baseError{
			code:    CodeGrammar,
			message: message,
		},
		Node: node,
	}
}

// LoadError represents errors reading or decoding grammar and registry files
type LoadError struct {
	baseError
	Path string
}

// NewLoadError creates a new load error
func NewLoadError(path string, message string, cause error) *LoadError {
	return &LoadError{
		baseError: baseError{
			code:    CodeLoad,
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// ConfigurationError represents errors in configuration files
type ConfigurationError struct {
	baseError
	Path string
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(path string, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		baseError: baseError{
			code:    CodeConfiguration,
			message: message,
			cause:   cause,
		},
		Path: path,
	}
}

// ValidationError represents errors during validation
type ValidationError struct {
	baseError
	Field string
}

// NewValidationError creates a new validation error
func NewValidationError(field string, message string, cause error) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			code:    CodeValidation,
			message: message,
			cause:   cause,
		},
		Field: field,
	}
}

// NotFoundError represents errors when a resource is not found
type NotFoundError struct {
	baseError
	Resource string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, message string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			code:    CodeNotFound,
			message: message,
		},
		Resource: resource,
	}
}

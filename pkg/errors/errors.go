// Package errors provides custom error types for the songmap system.
// These errors enable programmatic error checking across adapters and
// carry enough context (adapter, index, field) to reproduce a failure.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is, As and Join are re-exported so callers only import one errors package.
var (
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Common sentinel errors for the songmap system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupported indicates that a source does not support an operation or attribute
	ErrUnsupported = errors.New("unsupported")

	// ErrUnreadable indicates a value that could not be read right now
	ErrUnreadable = errors.New("unreadable")

	// ErrPosition indicates that the live player could not be positioned
	ErrPosition = errors.New("position fault")

	// ErrConfig indicates a configuration problem detected before any I/O
	ErrConfig = errors.New("configuration error")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// TypeError is returned when a value of the wrong type is assigned to a
// strictly typed field.
type TypeError struct {
	Field string
	Want  string
	Value any
}

// Error implements the error interface
func (e *TypeError) Error() string {
	return fmt.Sprintf("field %s has to be of type %s, got %T = %v", e.Field, e.Want, e.Value, e.Value)
}

// Is implements errors.Is support
func (e *TypeError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewTypeError creates a new TypeError
func NewTypeError(field, want string, value any) *TypeError {
	return &TypeError{Field: field, Want: want, Value: value}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// AdapterParameterError reports an adapter option that cannot be exposed
// on the configuration surface, typically because it lacks a usable type.
type AdapterParameterError struct {
	Adapter   string
	Parameter string
	Message   string
}

// Error implements the error interface
func (e *AdapterParameterError) Error() string {
	return fmt.Sprintf("adapter %s parameter %q: %s", e.Adapter, e.Parameter, e.Message)
}

// Is implements errors.Is support
func (e *AdapterParameterError) Is(target error) bool {
	return target == ErrConfig
}

// NewAdapterParameterError creates a new AdapterParameterError
func NewAdapterParameterError(adapter, parameter, message string) *AdapterParameterError {
	return &AdapterParameterError{Adapter: adapter, Parameter: parameter, Message: message}
}

// PositionError represents a failed attempt to move the live player to an index.
type PositionError struct {
	Index int
	Err   error
}

// Error implements the error interface
func (e *PositionError) Error() string {
	return fmt.Sprintf("unable to position player on index %d: %v", e.Index, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *PositionError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *PositionError) Is(target error) bool {
	return target == ErrPosition
}

// NewPositionError creates a new PositionError
func NewPositionError(index int, err error) *PositionError {
	return &PositionError{Index: index, Err: err}
}

// FieldError represents a failure to read or write a single field of a
// record. The wrapped error tells whether the field was unreadable or
// unsupported.
type FieldError struct {
	Operation string // "get" or "set"
	Field     string
	Err       error
}

// Error implements the error interface
func (e *FieldError) Error() string {
	return fmt.Sprintf("unable to %s field %s: %v", e.Operation, e.Field, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *FieldError) Unwrap() error {
	return e.Err
}

// NewFieldError creates a new FieldError
func NewFieldError(operation, field string, err error) *FieldError {
	return &FieldError{Operation: operation, Field: field, Err: err}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "xml", "json", "date", etc.
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "open", "read", "write", "close"
	Resource  string // "reader", "writer", "store", "song"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// ProcessError represents an error from an external process or command
type ProcessError struct {
	Operation string // What operation was being performed
	Command   string // The command that was executed
	Output    string // Stdout/stderr output from the process
	Err       error  // Underlying error
}

// Error implements the error interface
func (e *ProcessError) Error() string {
	if e.Output != "" {
		return fmt.Sprintf("process error during %s (command: %s): %v\nOutput: %s", e.Operation, e.Command, e.Err, e.Output)
	}
	return fmt.Sprintf("process error during %s (command: %s): %v", e.Operation, e.Command, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *ProcessError) Unwrap() error {
	return e.Err
}

// NewProcessError creates a new ProcessError
func NewProcessError(operation, command, output string, err error) *ProcessError {
	return &ProcessError{
		Operation: operation,
		Command:   command,
		Output:    output,
		Err:       err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsConfigError checks if an error is a configuration error
func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfig)
}

// IsPositionError checks if an error is a live-player positioning fault
func IsPositionError(err error) bool {
	return errors.Is(err, ErrPosition)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

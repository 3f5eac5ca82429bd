package errors

import (
	"fmt"
	"time"
)

// Error types for the noid minter
type ErrorType string

const (
	// Template errors
	ErrorTypeMask ErrorType = "mask"

	// Minting errors
	ErrorTypeMint     ErrorType = "mint"
	ErrorTypeValidate ErrorType = "validate"

	// Configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// MaskError reports a mask that breaks the mask grammar
type MaskError struct {
	Type       ErrorType
	Mask       string
	Position   int    // index of the offending character, -1 when not tied to one
	Rule       string // human readable rule that failed
	Underlying error
}

// NewMaskError creates a new mask error
func NewMaskError(mask string, position int, rule string, err error) *MaskError {
	return &MaskError{
		Type:       ErrorTypeMask,
		Mask:       mask,
		Position:   position,
		Rule:       rule,
		Underlying: err,
	}
}

// Error implements the error interface
func (e *MaskError) Error() string {
	if e.Position >= 0 && e.Position < len(e.Mask) {
		return fmt.Sprintf("%v %q: %s (character %q at position %d)",
			e.Underlying, e.Mask, e.Rule, e.Mask[e.Position], e.Position)
	}
	return fmt.Sprintf("%v %q: %s", e.Underlying, e.Mask, e.Rule)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *MaskError) Unwrap() error {
	return e.Underlying
}

// MintError represents a failure to mint an identifier for an index
type MintError struct {
	Type       ErrorType
	Template   string
	Index      string // decimal form, indexes may exceed 64 bits
	Underlying error
	Timestamp  time.Time
}

// NewMintError creates a new mint error
func NewMintError(template, index string, err error) *MintError {
	return &MintError{
		Type:       ErrorTypeMint,
		Template:   template,
		Index:      index,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *MintError) Error() string {
	if e.Index == "" {
		return fmt.Sprintf("cannot mint a noid with template %q: %v", e.Template, e.Underlying)
	}
	return fmt.Sprintf("cannot mint a noid for (counter = %s) with template %q: %v", e.Index, e.Template, e.Underlying)
}

// Unwrap returns the underlying error
func (e *MintError) Unwrap() error {
	return e.Underlying
}

// ValidationError represents an identifier that failed parsing or verification
type ValidationError struct {
	Type       ErrorType
	Identifier string
	Underlying error
}

// NewValidationError creates a new validation error
func NewValidationError(identifier string, err error) *ValidationError {
	return &ValidationError{
		Type:       ErrorTypeValidate,
		Identifier: identifier,
		Underlying: err,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid noid %q: %v", e.Identifier, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ValidationError) Unwrap() error {
	return e.Underlying
}

// ConfigError represents a configuration error
type ConfigError struct {
	Type       ErrorType
	Field      string
	Value      string
	Underlying error
	Timestamp  time.Time
}

// NewConfigError creates a new config error
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Type:       ErrorTypeConfig,
		Field:      field,
		Value:      value,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// MultiError represents multiple errors
type MultiError struct {
	Errors []error
}

// NewMultiError creates a new multi-error
func NewMultiError(errs []error) *MultiError {
	// Filter out nil errors
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

// ErrorOrNil returns nil when no errors were collected
func (e *MultiError) ErrorOrNil() error {
	if e == nil || len(e.Errors) == 0 {
		return nil
	}
	return e
}

// Error implements the error interface
func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
}

// Unwrap returns all errors
func (e *MultiError) Unwrap() []error {
	return e.Errors
}

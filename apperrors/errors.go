// Package apperrors defines the closed error taxonomy shared by the
// HTTP handlers and the domain packages. Handlers map these to status
// codes in exactly one place; anything outside the taxonomy is a 500.
package apperrors

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// FieldError describes a single invalid field in a request payload.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError aggregates every field-level problem found in a
// request so the client gets the full list in one response.
type ValidationError struct {
	errs *multierror.Error
}

func (e *ValidationError) Add(field, message string) {
	e.errs = multierror.Append(e.errs, FieldError{Field: field, Message: message})
}

func (e *ValidationError) Error() string {
	return e.errs.Error()
}

// Fields returns the collected field errors in the order they were added.
func (e *ValidationError) Fields() []FieldError {
	fields := make([]FieldError, 0, len(e.errs.Errors))
	for _, err := range e.errs.Errors {
		if fe, ok := err.(FieldError); ok {
			fields = append(fields, fe)
		}
	}
	return fields
}

// ErrOrNil returns the error if any field errors were collected.
func (e *ValidationError) ErrOrNil() error {
	if e.errs.ErrorOrNil() == nil {
		return nil
	}
	return e
}

// NotFoundError marks a referenced entity that does not exist.
type NotFoundError struct {
	Resource string
	ID       interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Resource, e.ID)
}

// ConfigError marks a missing or unusable configuration value. It is
// fatal at startup, never a per-request condition.
type ConfigError struct {
	Key string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration value %s is not set", e.Key)
}

// ExternalServiceError wraps a failure of an external collaborator
// (the geocoding provider). Callers degrade and log; it never fails an
// order or a listing request.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// ConflictError marks a write rejected by a uniqueness constraint.
type ConflictError struct {
	Resource string
	Key      string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists for %s", e.Resource, e.Key)
}

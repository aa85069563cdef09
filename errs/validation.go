package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ValidationError reports every missing or invalid form field at once, together
// with the submitted input so a client can re-render its form.
type ValidationError struct {
	Missing []string
	Invalid map[string]string
	Input   map[string]string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.Missing, ", "))
	}
	for field, reason := range e.Invalid {
		parts = append(parts, fmt.Sprintf("invalid %s: %s", field, reason))
	}
	if len(parts) == 0 {
		return ErrValidation.Error()
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Fields lists all offending field names, missing ones first
func (e *ValidationError) Fields() []string {
	fields := append([]string{}, e.Missing...)
	for field := range e.Invalid {
		fields = append(fields, field)
	}
	return fields
}

func (e *ValidationError) StatusCode() int {
	return http.StatusBadRequest
}

// AddMissing records a required field that was not supplied
func (e *ValidationError) AddMissing(field string) {
	e.Missing = append(e.Missing, field)
}

// AddInvalid records a supplied field whose value was rejected
func (e *ValidationError) AddInvalid(field, reason string) {
	if e.Invalid == nil {
		e.Invalid = make(map[string]string)
	}
	e.Invalid[field] = reason
}

// OrNil returns nil when nothing was recorded, so callers can `return v.OrNil()`
func (e *ValidationError) OrNil() error {
	if len(e.Missing) == 0 && len(e.Invalid) == 0 {
		return nil
	}
	return e
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

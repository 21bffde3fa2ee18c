package models

import (
	"errors"
	"fmt"
)

// NotFoundError signals that a referenced entity does not exist. The HTTP
// boundary maps it to a 404 without inspecting which entity was missing.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// Validation reasons, used as metric labels.
const (
	ReasonMissingField = "missing_field"
	ReasonTypeMismatch = "type_mismatch"
	ReasonInvalidInput = "invalid_input"
)

// ValidationError signals a rejected input, typically a payload that failed
// schema normalization. Field names the offending field when there is one.
type ValidationError struct {
	Field   string
	Reason  string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError signals an input that collides with existing state, such as
// a duplicate field name within one business schema.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

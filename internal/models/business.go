package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// FieldDataType enumerates the declared types a schema field can carry.
type FieldDataType string

const (
	FieldTypeString   FieldDataType = "string"
	FieldTypeInteger  FieldDataType = "integer"
	FieldTypeFloat    FieldDataType = "float"
	FieldTypeBoolean  FieldDataType = "boolean"
	FieldTypeDatetime FieldDataType = "datetime"
)

// IsValid checks if the data type is one of the supported kinds.
func (t FieldDataType) IsValid() bool {
	switch t {
	case FieldTypeString, FieldTypeInteger, FieldTypeFloat, FieldTypeBoolean, FieldTypeDatetime:
		return true
	default:
		return false
	}
}

const (
	MaxNameLength        = 120
	MaxDescriptionLength = 500
)

// Validation errors
var (
	ErrEmptyName          = errors.New("name cannot be empty")
	ErrNameTooLong        = errors.New("name exceeds maximum length")
	ErrDescriptionTooLong = errors.New("description exceeds maximum length")
	ErrInvalidDataType    = errors.New("invalid field data type")
)

// BusinessDefinition is a tenant-like use case with its own field schema
// and rules.
type BusinessDefinition struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// BusinessCreate is the payload required to register a business.
type BusinessCreate struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Validate checks the create payload against length constraints.
func (c *BusinessCreate) Validate() error {
	if c.Name == "" {
		return ErrEmptyName
	}
	if len(c.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if len(c.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// BusinessUpdate carries the mutable business attributes. Nil means
// "leave unchanged".
type BusinessUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// Validate checks whichever attributes are present.
func (u *BusinessUpdate) Validate() error {
	if u.Name != nil {
		if *u.Name == "" {
			return ErrEmptyName
		}
		if len(*u.Name) > MaxNameLength {
			return ErrNameTooLong
		}
	}
	if u.Description != nil && len(*u.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// FieldDefinition is one named, typed slot in a business's expected event
// shape. Immutable once created.
type FieldDefinition struct {
	ID          uuid.UUID     `json:"id"`
	BusinessID  uuid.UUID     `json:"business_id"`
	Name        string        `json:"name"`
	DataType    FieldDataType `json:"data_type"`
	Required    bool          `json:"required"`
	Description string        `json:"description,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// FieldCreate is the payload required to declare a schema field.
type FieldCreate struct {
	Name        string        `json:"name"`
	DataType    FieldDataType `json:"data_type"`
	Required    *bool         `json:"required,omitempty"` // defaults to true
	Description string        `json:"description,omitempty"`
}

// Validate checks the field declaration.
func (c *FieldCreate) Validate() error {
	if c.Name == "" {
		return ErrEmptyName
	}
	if len(c.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if !c.DataType.IsValid() {
		return ErrInvalidDataType
	}
	if len(c.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// IsRequired resolves the optional flag, defaulting to true.
func (c *FieldCreate) IsRequired() bool {
	if c.Required == nil {
		return true
	}
	return *c.Required
}

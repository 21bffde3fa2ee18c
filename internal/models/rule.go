package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Severity represents alert severity levels
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// IsValid checks if the severity level is valid
func (s Severity) IsValid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityCritical:
		return true
	default:
		return false
	}
}

// Operator enumerates the supported single-field comparisons.
type Operator string

const (
	OpEq  Operator = "eq"
	OpNe  Operator = "ne"
	OpGt  Operator = "gt"
	OpGte Operator = "gte"
	OpLt  Operator = "lt"
	OpLte Operator = "lte"
)

// IsValid checks if the operator is one of the supported comparisons.
func (o Operator) IsValid() bool {
	switch o {
	case OpEq, OpNe, OpGt, OpGte, OpLt, OpLte:
		return true
	default:
		return false
	}
}

// Rule validation errors
var (
	ErrEmptyConditionField = errors.New("condition field cannot be empty")
	ErrInvalidOperator     = errors.New("invalid condition operator")
	ErrInvalidSeverity     = errors.New("invalid severity level")
	ErrNegativeCooldown    = errors.New("cooldown cannot be negative")
)

// RuleCondition is the single comparison that must hold for a rule to fire.
type RuleCondition struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    Value    `json:"value"`
}

// Validate checks the condition shape.
func (c *RuleCondition) Validate() error {
	if c.Field == "" {
		return ErrEmptyConditionField
	}
	if len(c.Field) > MaxNameLength {
		return ErrNameTooLong
	}
	if !c.Operator.IsValid() {
		return ErrInvalidOperator
	}
	return nil
}

// RuleDefinition is a stored single-condition trigger owned by a business.
// Immutable after creation.
type RuleDefinition struct {
	ID              uuid.UUID     `json:"id"`
	BusinessID      uuid.UUID     `json:"business_id"`
	Name            string        `json:"name"`
	Description     string        `json:"description,omitempty"`
	Condition       RuleCondition `json:"condition"`
	Severity        Severity      `json:"severity"`
	CooldownSeconds int           `json:"cooldown_seconds,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

// Cooldown returns the rule's suppression window. Zero disables suppression.
func (r *RuleDefinition) Cooldown() time.Duration {
	return time.Duration(r.CooldownSeconds) * time.Second
}

// RuleCreate is the payload required to attach a rule to a business.
type RuleCreate struct {
	Name            string        `json:"name"`
	Description     string        `json:"description,omitempty"`
	Condition       RuleCondition `json:"condition"`
	Severity        Severity      `json:"severity,omitempty"` // defaults to warning
	CooldownSeconds int           `json:"cooldown_seconds,omitempty"`
}

// Validate checks the create payload.
func (c *RuleCreate) Validate() error {
	if c.Name == "" {
		return ErrEmptyName
	}
	if len(c.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if len(c.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if err := c.Condition.Validate(); err != nil {
		return err
	}
	if c.Severity != "" && !c.Severity.IsValid() {
		return ErrInvalidSeverity
	}
	if c.CooldownSeconds < 0 {
		return ErrNegativeCooldown
	}
	return nil
}

// EffectiveSeverity resolves the optional severity, defaulting to warning.
func (c *RuleCreate) EffectiveSeverity() Severity {
	if c.Severity == "" {
		return SeverityWarning
	}
	return c.Severity
}

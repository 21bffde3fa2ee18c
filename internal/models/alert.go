package models

import (
	"time"

	"github.com/google/uuid"
)

// AlertStatus enumerates the alert lifecycle states. Closed is reserved for
// future closure flows and is never produced by the current pipeline.
type AlertStatus string

const (
	AlertStatusOpen   AlertStatus = "open"
	AlertStatusAcked  AlertStatus = "acked"
	AlertStatusClosed AlertStatus = "closed"
)

// IsValid checks if the status is a known lifecycle state.
func (s AlertStatus) IsValid() bool {
	switch s {
	case AlertStatusOpen, AlertStatusAcked, AlertStatusClosed:
		return true
	default:
		return false
	}
}

// Alert is a record produced when an event satisfies a rule's condition.
type Alert struct {
	ID             uuid.UUID   `json:"id"`
	BusinessID     uuid.UUID   `json:"business_id"`
	RuleID         uuid.UUID   `json:"rule_id"`
	EventID        uuid.UUID   `json:"event_id"`
	Message        string      `json:"message"`
	Severity       Severity    `json:"severity"`
	Status         AlertStatus `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	AcknowledgedAt *time.Time  `json:"acknowledged_at,omitempty"`
	AcknowledgedBy string      `json:"acknowledged_by,omitempty"`
}

// AlertCreate is the payload needed to register an alert. The rule and event
// identifiers must come from the same ingest call that produced the alert.
type AlertCreate struct {
	BusinessID uuid.UUID `json:"business_id"`
	RuleID     uuid.UUID `json:"rule_id"`
	EventID    uuid.UUID `json:"event_id"`
	Message    string    `json:"message"`
	Severity   Severity  `json:"severity"`
}

// AlertFilter narrows an alert listing. Zero values match everything.
type AlertFilter struct {
	BusinessID uuid.UUID
	Status     AlertStatus
}

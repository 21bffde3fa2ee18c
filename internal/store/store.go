// Package store holds the memory-resident state of the platform. Every
// store guards its maps with a mutex so concurrent requests against the
// same business cannot lose updates, and every read returns a copy rather
// than a pointer into the store.
package store

import (
	"context"

	"github.com/google/uuid"

	"beacon/internal/models"
)

// BusinessStore persists business definitions and their field schemas.
type BusinessStore interface {
	AddBusiness(ctx context.Context, business models.BusinessDefinition) error
	GetBusiness(ctx context.Context, id uuid.UUID) (models.BusinessDefinition, error)
	ListBusinesses(ctx context.Context) ([]models.BusinessDefinition, error)
	UpdateBusiness(ctx context.Context, business models.BusinessDefinition) error
	AddField(ctx context.Context, field models.FieldDefinition) error
	ListFields(ctx context.Context, businessID uuid.UUID) ([]models.FieldDefinition, error)
}

// RuleStore persists rule definitions grouped by business.
type RuleStore interface {
	AddRule(ctx context.Context, rule models.RuleDefinition) error
	GetRule(ctx context.Context, businessID, ruleID uuid.UUID) (models.RuleDefinition, error)
	ListRules(ctx context.Context, businessID uuid.UUID) ([]models.RuleDefinition, error)
}

// EventStore persists ingested events grouped by business, append-only.
type EventStore interface {
	AddEvent(ctx context.Context, event models.EventRecord) (models.EventRecord, error)
	ListEvents(ctx context.Context, businessID uuid.UUID) ([]models.EventRecord, error)
}

// AlertStore persists alerts keyed by their identifier.
type AlertStore interface {
	AddAlert(ctx context.Context, alert models.Alert) (models.Alert, error)
	GetAlert(ctx context.Context, id uuid.UUID) (models.Alert, error)
	ListAlerts(ctx context.Context, filter models.AlertFilter) ([]models.Alert, error)
	UpdateAlert(ctx context.Context, alert models.Alert) (models.Alert, error)
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// EventRecord is one ingested, normalized occurrence attributed to a
// business. Records are append-only and never mutated.
type EventRecord struct {
	ID         uuid.UUID `json:"id"`
	BusinessID uuid.UUID `json:"business_id"`
	Payload    Payload   `json:"payload"`
	ReceivedAt time.Time `json:"received_at"`
}

// EventIngest is the incoming request body for the ingest endpoint.
type EventIngest struct {
	Payload map[string]Value `json:"payload"`
}

package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"beacon/internal/models"
)

// MemoryEventStore keeps ingested events in memory, append-only, grouped by
// business in arrival order.
type MemoryEventStore struct {
	mu     sync.RWMutex
	events map[uuid.UUID][]models.EventRecord
}

func NewMemoryEventStore() *MemoryEventStore {
	return &MemoryEventStore{
		events: make(map[uuid.UUID][]models.EventRecord),
	}
}

func (s *MemoryEventStore) AddEvent(ctx context.Context, event models.EventRecord) (models.EventRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := event
	stored.Payload = clonePayload(event.Payload)
	s.events[event.BusinessID] = append(s.events[event.BusinessID], stored)
	return event, nil
}

func (s *MemoryEventStore) ListEvents(ctx context.Context, businessID uuid.UUID) ([]models.EventRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := s.events[businessID]
	result := make([]models.EventRecord, len(events))
	for i, event := range events {
		result[i] = event
		result[i].Payload = clonePayload(event.Payload)
	}
	return result, nil
}

func clonePayload(payload models.Payload) models.Payload {
	if payload == nil {
		return nil
	}
	cloned := make(models.Payload, len(payload))
	for k, v := range payload {
		cloned[k] = v
	}
	return cloned
}

var _ EventStore = (*MemoryEventStore)(nil)

package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"beacon/internal/models"
)

// MemoryAlertStore keeps alerts in memory keyed by identifier, with the
// creation order preserved for listings.
type MemoryAlertStore struct {
	mu     sync.RWMutex
	alerts map[uuid.UUID]models.Alert
	order  []uuid.UUID
}

func NewMemoryAlertStore() *MemoryAlertStore {
	return &MemoryAlertStore{
		alerts: make(map[uuid.UUID]models.Alert),
	}
}

func (s *MemoryAlertStore) AddAlert(ctx context.Context, alert models.Alert) (models.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.alerts[alert.ID] = alert
	s.order = append(s.order, alert.ID)
	return alert, nil
}

func (s *MemoryAlertStore) GetAlert(ctx context.Context, id uuid.UUID) (models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alert, exists := s.alerts[id]
	if !exists {
		return models.Alert{}, &models.NotFoundError{Entity: "alert", ID: id.String()}
	}
	return alert, nil
}

func (s *MemoryAlertStore) ListAlerts(ctx context.Context, filter models.AlertFilter) ([]models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Alert, 0, len(s.order))
	for _, id := range s.order {
		alert := s.alerts[id]
		if filter.BusinessID != uuid.Nil && alert.BusinessID != filter.BusinessID {
			continue
		}
		if filter.Status != "" && alert.Status != filter.Status {
			continue
		}
		result = append(result, alert)
	}
	return result, nil
}

func (s *MemoryAlertStore) UpdateAlert(ctx context.Context, alert models.Alert) (models.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.alerts[alert.ID]; !exists {
		return models.Alert{}, &models.NotFoundError{Entity: "alert", ID: alert.ID.String()}
	}
	s.alerts[alert.ID] = alert
	return alert, nil
}

var _ AlertStore = (*MemoryAlertStore)(nil)

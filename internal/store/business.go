package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"beacon/internal/models"
)

// MemoryBusinessStore keeps businesses and their field schemas in memory.
// Fields preserve insertion order, which is the schema order used during
// normalization.
type MemoryBusinessStore struct {
	mu         sync.RWMutex
	businesses map[uuid.UUID]models.BusinessDefinition
	order      []uuid.UUID
	fields     map[uuid.UUID][]models.FieldDefinition
}

func NewMemoryBusinessStore() *MemoryBusinessStore {
	return &MemoryBusinessStore{
		businesses: make(map[uuid.UUID]models.BusinessDefinition),
		fields:     make(map[uuid.UUID][]models.FieldDefinition),
	}
}

func (s *MemoryBusinessStore) AddBusiness(ctx context.Context, business models.BusinessDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.businesses[business.ID]; exists {
		return &models.ConflictError{Message: fmt.Sprintf("business %s already exists", business.ID)}
	}
	s.businesses[business.ID] = business
	s.order = append(s.order, business.ID)
	return nil
}

func (s *MemoryBusinessStore) GetBusiness(ctx context.Context, id uuid.UUID) (models.BusinessDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	business, exists := s.businesses[id]
	if !exists {
		return models.BusinessDefinition{}, &models.NotFoundError{Entity: "business", ID: id.String()}
	}
	return business, nil
}

func (s *MemoryBusinessStore) ListBusinesses(ctx context.Context) ([]models.BusinessDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.BusinessDefinition, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.businesses[id])
	}
	return result, nil
}

func (s *MemoryBusinessStore) UpdateBusiness(ctx context.Context, business models.BusinessDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.businesses[business.ID]; !exists {
		return &models.NotFoundError{Entity: "business", ID: business.ID.String()}
	}
	s.businesses[business.ID] = business
	return nil
}

// AddField appends a field to the business schema. Field names are unique
// within one business; a duplicate is a conflict, not a silent overwrite.
func (s *MemoryBusinessStore) AddField(ctx context.Context, field models.FieldDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.businesses[field.BusinessID]; !exists {
		return &models.NotFoundError{Entity: "business", ID: field.BusinessID.String()}
	}
	for _, existing := range s.fields[field.BusinessID] {
		if existing.Name == field.Name {
			return &models.ConflictError{
				Message: fmt.Sprintf("field '%s' already defined for this business", field.Name),
			}
		}
	}
	s.fields[field.BusinessID] = append(s.fields[field.BusinessID], field)
	return nil
}

func (s *MemoryBusinessStore) ListFields(ctx context.Context, businessID uuid.UUID) ([]models.FieldDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fields := s.fields[businessID]
	result := make([]models.FieldDefinition, len(fields))
	copy(result, fields)
	return result, nil
}

var _ BusinessStore = (*MemoryBusinessStore)(nil)

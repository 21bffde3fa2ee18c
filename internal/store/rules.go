package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"beacon/internal/models"
)

// MemoryRuleStore keeps rule definitions in memory, grouped by business in
// insertion order.
type MemoryRuleStore struct {
	mu    sync.RWMutex
	rules map[uuid.UUID][]models.RuleDefinition
}

func NewMemoryRuleStore() *MemoryRuleStore {
	return &MemoryRuleStore{
		rules: make(map[uuid.UUID][]models.RuleDefinition),
	}
}

func (s *MemoryRuleStore) AddRule(ctx context.Context, rule models.RuleDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rules[rule.BusinessID] = append(s.rules[rule.BusinessID], rule)
	return nil
}

func (s *MemoryRuleStore) GetRule(ctx context.Context, businessID, ruleID uuid.UUID) (models.RuleDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rule := range s.rules[businessID] {
		if rule.ID == ruleID {
			return rule, nil
		}
	}
	return models.RuleDefinition{}, &models.NotFoundError{Entity: "rule", ID: ruleID.String()}
}

func (s *MemoryRuleStore) ListRules(ctx context.Context, businessID uuid.UUID) ([]models.RuleDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rules := s.rules[businessID]
	result := make([]models.RuleDefinition, len(rules))
	copy(result, rules)
	return result, nil
}

var _ RuleStore = (*MemoryRuleStore)(nil)

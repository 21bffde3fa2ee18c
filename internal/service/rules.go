package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"beacon/internal/logger"
	"beacon/internal/models"
	"beacon/internal/store"
)

// RuleService coordinates rule validation and storage. Rules are immutable
// after creation and must reference an existing business.
type RuleService struct {
	rules      store.RuleStore
	businesses store.BusinessStore
}

func NewRuleService(rules store.RuleStore, businesses store.BusinessStore) *RuleService {
	return &RuleService{rules: rules, businesses: businesses}
}

func (s *RuleService) CreateRule(ctx context.Context, businessID uuid.UUID, input models.RuleCreate) (models.RuleDefinition, error) {
	if err := input.Validate(); err != nil {
		return models.RuleDefinition{}, &models.ValidationError{Message: err.Error()}
	}
	if _, err := s.businesses.GetBusiness(ctx, businessID); err != nil {
		return models.RuleDefinition{}, err
	}

	rule := models.RuleDefinition{
		ID:              uuid.New(),
		BusinessID:      businessID,
		Name:            input.Name,
		Description:     input.Description,
		Condition:       input.Condition,
		Severity:        input.EffectiveSeverity(),
		CooldownSeconds: input.CooldownSeconds,
		CreatedAt:       time.Now().UTC(),
	}
	if err := s.rules.AddRule(ctx, rule); err != nil {
		return models.RuleDefinition{}, err
	}

	log := logger.WithComponent("rule_service")
	log.Info().
		Str("business_id", businessID.String()).
		Str("rule_id", rule.ID.String()).
		Str("name", rule.Name).
		Str("field", rule.Condition.Field).
		Str("operator", string(rule.Condition.Operator)).
		Str("severity", string(rule.Severity)).
		Msg("rule created")
	return rule, nil
}

func (s *RuleService) ListRules(ctx context.Context, businessID uuid.UUID) ([]models.RuleDefinition, error) {
	if _, err := s.businesses.GetBusiness(ctx, businessID); err != nil {
		return nil, err
	}
	return s.rules.ListRules(ctx, businessID)
}

func (s *RuleService) GetRule(ctx context.Context, businessID, ruleID uuid.UUID) (models.RuleDefinition, error) {
	return s.rules.GetRule(ctx, businessID, ruleID)
}

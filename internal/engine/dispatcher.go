package engine

import (
	"context"

	"github.com/google/uuid"

	"beacon/internal/logger"
	"beacon/internal/metrics"
	"beacon/internal/models"
)

// RuleLister is the slice of rule storage the dispatcher needs.
type RuleLister interface {
	ListRules(ctx context.Context, businessID uuid.UUID) ([]models.RuleDefinition, error)
}

// CooldownChecker reports whether a rule is inside its suppression window.
type CooldownChecker interface {
	Active(ctx context.Context, ruleID string) (bool, error)
}

// Dispatcher finds the rules of a business that match an event. It has no
// side effects of its own: it reads rule storage and evaluates each rule
// independently against the event payload.
type Dispatcher struct {
	rules     RuleLister
	cooldowns CooldownChecker
}

// NewDispatcher creates a dispatcher. cooldowns may be nil, which disables
// suppression entirely.
func NewDispatcher(rules RuleLister, cooldowns CooldownChecker) *Dispatcher {
	return &Dispatcher{rules: rules, cooldowns: cooldowns}
}

// Dispatch returns every rule of the business whose condition matches the
// event payload, in rule-store listing order. Matches whose rule has an
// active cooldown are suppressed. A cooldown lookup failure is logged and
// treated as inactive; it never fails the dispatch.
func (d *Dispatcher) Dispatch(ctx context.Context, businessID uuid.UUID, event models.EventRecord) ([]models.RuleDefinition, error) {
	rules, err := d.rules.ListRules(ctx, businessID)
	if err != nil {
		return nil, err
	}

	log := logger.WithComponent("dispatcher")
	var matched []models.RuleDefinition
	for _, rule := range rules {
		metrics.RuleEvaluationsTotal.Inc()
		if !Evaluate(rule.Condition, event.Payload) {
			continue
		}
		metrics.RuleMatchesTotal.Inc()

		if rule.CooldownSeconds > 0 && d.cooldowns != nil {
			active, err := d.cooldowns.Active(ctx, rule.ID.String())
			if err != nil {
				log.Warn().
					Err(err).
					Str("rule_id", rule.ID.String()).
					Msg("cooldown lookup failed, treating as inactive")
			} else if active {
				metrics.CooldownSuppressedTotal.Inc()
				log.Debug().
					Str("rule_id", rule.ID.String()).
					Str("event_id", event.ID.String()).
					Msg("match suppressed by cooldown")
				continue
			}
		}
		matched = append(matched, rule)
	}
	return matched, nil
}

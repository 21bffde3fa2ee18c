package engine

import "beacon/internal/models"

// Evaluate returns true if the rule condition matches the event payload.
// An absent field is a non-match, not an error. Ordering comparisons that
// are undefined for the operand kinds are non-matches as well, so a single
// badly typed rule can never abort a dispatch loop.
func Evaluate(cond models.RuleCondition, payload models.Payload) bool {
	left, ok := payload[cond.Field]
	if !ok {
		return false
	}

	switch cond.Operator {
	case models.OpEq:
		return left.Equal(cond.Value)
	case models.OpNe:
		return !left.Equal(cond.Value)
	}

	c, ok := left.Compare(cond.Value)
	if !ok {
		return false
	}
	switch cond.Operator {
	case models.OpGt:
		return c > 0
	case models.OpGte:
		return c >= 0
	case models.OpLt:
		return c < 0
	case models.OpLte:
		return c <= 0
	default:
		return false
	}
}

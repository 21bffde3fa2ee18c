package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"beacon/internal/models"
)

func cond(field string, op models.Operator, value models.Value) models.RuleCondition {
	return models.RuleCondition{Field: field, Operator: op, Value: value}
}

func TestEvaluateAbsentFieldIsNonMatch(t *testing.T) {
	payload := models.Payload{"present": models.IntValue(1)}

	for _, op := range []models.Operator{models.OpEq, models.OpNe, models.OpGt, models.OpGte, models.OpLt, models.OpLte} {
		assert.False(t, Evaluate(cond("absent", op, models.IntValue(1)), payload), "operator %s", op)
	}
}

func TestEvaluateOperators(t *testing.T) {
	payload := models.Payload{
		"durationMs": models.IntValue(7200),
		"status":     models.StringValue("failed"),
		"ratio":      models.FloatValue(0.25),
		"enabled":    models.BoolValue(true),
	}

	tests := []struct {
		name string
		cond models.RuleCondition
		want bool
	}{
		{"gt match", cond("durationMs", models.OpGt, models.IntValue(5000)), true},
		{"gt non-match", cond("durationMs", models.OpGt, models.IntValue(10000)), false},
		{"gte boundary", cond("durationMs", models.OpGte, models.IntValue(7200)), true},
		{"lt match", cond("ratio", models.OpLt, models.FloatValue(0.5)), true},
		{"lte boundary", cond("ratio", models.OpLte, models.FloatValue(0.25)), true},
		{"eq string", cond("status", models.OpEq, models.StringValue("failed")), true},
		{"ne string", cond("status", models.OpNe, models.StringValue("ok")), true},
		{"eq bool", cond("enabled", models.OpEq, models.BoolValue(true)), true},
		{"eq cross-numeric", cond("durationMs", models.OpEq, models.FloatValue(7200.0)), true},
		{"gt cross-numeric", cond("ratio", models.OpGt, models.IntValue(0)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.cond, payload))
		})
	}
}

func TestEvaluateIncompatibleTypesNeverAbort(t *testing.T) {
	payload := models.Payload{"status": models.StringValue("failed")}

	// Ordering against a number is undefined for a string value.
	assert.False(t, Evaluate(cond("status", models.OpGt, models.IntValue(5)), payload))
	assert.False(t, Evaluate(cond("status", models.OpLte, models.IntValue(5)), payload))

	// Equality is always defined; mismatched kinds are simply unequal.
	assert.False(t, Evaluate(cond("status", models.OpEq, models.IntValue(5)), payload))
	assert.True(t, Evaluate(cond("status", models.OpNe, models.IntValue(5)), payload))
}

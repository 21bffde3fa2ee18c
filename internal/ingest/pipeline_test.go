package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beacon/internal/engine"
	"beacon/internal/models"
	"beacon/internal/service"
	"beacon/internal/state"
	"beacon/internal/store"
)

type fixture struct {
	pipeline   *Pipeline
	businesses *service.BusinessService
	rules      *service.RuleService
	alerts     *service.AlertService
	tracker    *state.MemoryTracker
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	businessStore := store.NewMemoryBusinessStore()
	ruleStore := store.NewMemoryRuleStore()
	eventStore := store.NewMemoryEventStore()
	alertStore := store.NewMemoryAlertStore()
	tracker := state.NewMemoryTracker()

	alertService := service.NewAlertService(alertStore)
	pipeline := NewPipeline(Config{
		Businesses: businessStore,
		Events:     eventStore,
		Dispatcher: engine.NewDispatcher(ruleStore, tracker),
		Alerts:     alertService,
		Cooldowns:  tracker,
	})

	return &fixture{
		pipeline:   pipeline,
		businesses: service.NewBusinessService(businessStore),
		rules:      service.NewRuleService(ruleStore, businessStore),
		alerts:     alertService,
		tracker:    tracker,
	}
}

func (f *fixture) setupSlowDurationBusiness(t *testing.T, cooldownSeconds int) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	business, err := f.businesses.CreateBusiness(ctx, models.BusinessCreate{Name: "Test Business", Description: "Demo"})
	require.NoError(t, err)

	_, err = f.businesses.AddField(ctx, business.ID, models.FieldCreate{
		Name:     "durationMs",
		DataType: models.FieldTypeInteger,
	})
	require.NoError(t, err)

	_, err = f.rules.CreateRule(ctx, business.ID, models.RuleCreate{
		Name:        "Slow duration",
		Description: "Flag slow events",
		Severity:    models.SeverityWarning,
		Condition: models.RuleCondition{
			Field:    "durationMs",
			Operator: models.OpGt,
			Value:    models.IntValue(5000),
		},
		CooldownSeconds: cooldownSeconds,
	})
	require.NoError(t, err)

	return business.ID
}

func TestIngestSlowDurationScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	businessID := f.setupSlowDurationBusiness(t, 0)

	// Fast event: no alert.
	event, alerts, err := f.pipeline.Ingest(ctx, businessID, map[string]models.Value{
		"durationMs": models.IntValue(1200),
	})
	require.NoError(t, err)
	assert.Empty(t, alerts)
	assert.Equal(t, businessID, event.BusinessID)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.False(t, event.ReceivedAt.IsZero())

	// Slow event: exactly one alert with the expected message.
	_, alerts, err = f.pipeline.Ingest(ctx, businessID, map[string]models.Value{
		"durationMs": models.IntValue(7200),
	})
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Rule 'Slow duration' triggered", alerts[0])

	stored, err := f.alerts.ListAlerts(ctx, models.AlertFilter{BusinessID: businessID})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, models.AlertStatusOpen, stored[0].Status)
	assert.Equal(t, models.SeverityWarning, stored[0].Severity)

	// Both events persisted, in arrival order.
	events, err := f.pipeline.ListEvents(ctx, businessID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.IntValue(1200), events[0].Payload["durationMs"])
	assert.Equal(t, models.IntValue(7200), events[1].Payload["durationMs"])
}

func TestIngestAlertLinksRuleAndEvent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	businessID := f.setupSlowDurationBusiness(t, 0)

	event, alerts, err := f.pipeline.Ingest(ctx, businessID, map[string]models.Value{
		"durationMs": models.IntValue(9000),
	})
	require.NoError(t, err)
	require.Len(t, alerts, 1)

	stored, err := f.alerts.ListAlerts(ctx, models.AlertFilter{})
	require.NoError(t, err)
	require.Len(t, stored, 1)

	rules, err := f.rules.ListRules(ctx, businessID)
	require.NoError(t, err)
	require.Len(t, rules, 1)

	assert.Equal(t, event.ID, stored[0].EventID)
	assert.Equal(t, rules[0].ID, stored[0].RuleID)
	assert.Equal(t, businessID, stored[0].BusinessID)
}

func TestIngestMissingRequiredFieldLeavesNoState(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	business, err := f.businesses.CreateBusiness(ctx, models.BusinessCreate{Name: "Required Field Biz"})
	require.NoError(t, err)
	_, err = f.businesses.AddField(ctx, business.ID, models.FieldCreate{
		Name:     "amount",
		DataType: models.FieldTypeFloat,
	})
	require.NoError(t, err)

	_, _, err = f.pipeline.Ingest(ctx, business.ID, map[string]models.Value{})
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))
	assert.Contains(t, err.Error(), "amount")

	events, err := f.pipeline.ListEvents(ctx, business.ID)
	require.NoError(t, err)
	assert.Empty(t, events)

	alerts, err := f.alerts.ListAlerts(ctx, models.AlertFilter{})
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestIngestUnknownBusinessWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.pipeline.Ingest(ctx, uuid.New(), map[string]models.Value{
		"durationMs": models.IntValue(100),
	})
	assert.True(t, models.IsNotFound(err))
}

func TestIngestTypeMismatchAborts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	businessID := f.setupSlowDurationBusiness(t, 0)

	_, _, err := f.pipeline.Ingest(ctx, businessID, map[string]models.Value{
		"durationMs": models.BoolValue(true),
	})
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))
	assert.Contains(t, err.Error(), "durationMs")

	events, err := f.pipeline.ListEvents(ctx, businessID)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestIngestOneAlertPerMatchingRule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	businessID := f.setupSlowDurationBusiness(t, 0)

	_, err := f.rules.CreateRule(ctx, businessID, models.RuleCreate{
		Name:     "Very slow duration",
		Severity: models.SeverityCritical,
		Condition: models.RuleCondition{
			Field:    "durationMs",
			Operator: models.OpGte,
			Value:    models.IntValue(7000),
		},
	})
	require.NoError(t, err)

	_, alerts, err := f.pipeline.Ingest(ctx, businessID, map[string]models.Value{
		"durationMs": models.IntValue(7200),
	})
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	assert.Equal(t, "Rule 'Slow duration' triggered", alerts[0])
	assert.Equal(t, "Rule 'Very slow duration' triggered", alerts[1])

	stored, err := f.alerts.ListAlerts(ctx, models.AlertFilter{Status: models.AlertStatusOpen})
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestIngestCoercesPayloadBeforeStoring(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	businessID := f.setupSlowDurationBusiness(t, 0)

	// A string that parses as an integer still trips the threshold rule.
	_, alerts, err := f.pipeline.Ingest(ctx, businessID, map[string]models.Value{
		"durationMs": models.StringValue("7200"),
		"note":       models.StringValue("undeclared key"),
	})
	require.NoError(t, err)
	require.Len(t, alerts, 1)

	events, err := f.pipeline.ListEvents(ctx, businessID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.IntValue(7200), events[0].Payload["durationMs"])
	assert.Equal(t, models.StringValue("undeclared key"), events[0].Payload["note"])
}

func TestIngestRespectsRuleCooldown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	businessID := f.setupSlowDurationBusiness(t, 300)

	payload := map[string]models.Value{"durationMs": models.IntValue(7200)}

	_, alerts, err := f.pipeline.Ingest(ctx, businessID, payload)
	require.NoError(t, err)
	require.Len(t, alerts, 1)

	// Second matching event inside the window is suppressed, but the
	// event itself is still persisted.
	_, alerts, err = f.pipeline.Ingest(ctx, businessID, payload)
	require.NoError(t, err)
	assert.Empty(t, alerts)

	events, err := f.pipeline.ListEvents(ctx, businessID)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	stored, err := f.alerts.ListAlerts(ctx, models.AlertFilter{})
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

type failingRuleLister struct {
	err error
}

func (f failingRuleLister) ListRules(ctx context.Context, businessID uuid.UUID) ([]models.RuleDefinition, error) {
	return nil, f.err
}

func TestIngestDispatchFailureStillReturnsStoredEvent(t *testing.T) {
	businessStore := store.NewMemoryBusinessStore()
	eventStore := store.NewMemoryEventStore()

	businesses := service.NewBusinessService(businessStore)
	pipeline := NewPipeline(Config{
		Businesses: businessStore,
		Events:     eventStore,
		Dispatcher: engine.NewDispatcher(failingRuleLister{err: errors.New("rule backend down")}, nil),
		Alerts:     service.NewAlertService(store.NewMemoryAlertStore()),
	})

	ctx := context.Background()
	business, err := businesses.CreateBusiness(ctx, models.BusinessCreate{Name: "Flaky Rules"})
	require.NoError(t, err)

	event, _, err := pipeline.Ingest(ctx, business.ID, map[string]models.Value{
		"durationMs": models.IntValue(100),
	})
	require.Error(t, err)

	// The event was persisted before dispatch failed; the caller gets it
	// back so the write is not invisible.
	assert.NotEqual(t, uuid.Nil, event.ID)
	stored, err := eventStore.ListEvents(ctx, business.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, event.ID, stored[0].ID)
}

func TestIngestEventTimestampsAreUTC(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	businessID := f.setupSlowDurationBusiness(t, 0)

	before := time.Now().UTC()
	event, _, err := f.pipeline.Ingest(ctx, businessID, map[string]models.Value{
		"durationMs": models.IntValue(10),
	})
	require.NoError(t, err)
	assert.Equal(t, time.UTC, event.ReceivedAt.Location())
	assert.False(t, event.ReceivedAt.Before(before))
}

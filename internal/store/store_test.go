package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beacon/internal/models"
)

func testBusiness(name string) models.BusinessDefinition {
	return models.BusinessDefinition{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

func TestBusinessStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryBusinessStore()

	business := testBusiness("Test Business")
	require.NoError(t, s.AddBusiness(ctx, business))

	got, err := s.GetBusiness(ctx, business.ID)
	require.NoError(t, err)
	assert.Equal(t, business.Name, got.Name)

	_, err = s.GetBusiness(ctx, uuid.New())
	assert.True(t, models.IsNotFound(err))

	got.Name = "Renamed"
	require.NoError(t, s.UpdateBusiness(ctx, got))
	updated, err := s.GetBusiness(ctx, business.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	all, err := s.ListBusinesses(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestBusinessStoreRejectsDuplicateFieldName(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryBusinessStore()

	business := testBusiness("Test Business")
	require.NoError(t, s.AddBusiness(ctx, business))

	mkField := func(name string) models.FieldDefinition {
		return models.FieldDefinition{
			ID:         uuid.New(),
			BusinessID: business.ID,
			Name:       name,
			DataType:   models.FieldTypeInteger,
			Required:   true,
		}
	}

	require.NoError(t, s.AddField(ctx, mkField("durationMs")))
	err := s.AddField(ctx, mkField("durationMs"))
	assert.True(t, models.IsConflict(err))

	fields, err := s.ListFields(ctx, business.ID)
	require.NoError(t, err)
	assert.Len(t, fields, 1)
}

func TestBusinessStoreFieldForUnknownBusiness(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryBusinessStore()

	err := s.AddField(ctx, models.FieldDefinition{
		ID:         uuid.New(),
		BusinessID: uuid.New(),
		Name:       "amount",
		DataType:   models.FieldTypeFloat,
	})
	assert.True(t, models.IsNotFound(err))
}

func TestRuleStorePreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryRuleStore()
	businessID := uuid.New()

	names := []string{"first", "second", "third"}
	for _, name := range names {
		require.NoError(t, s.AddRule(ctx, models.RuleDefinition{
			ID:         uuid.New(),
			BusinessID: businessID,
			Name:       name,
		}))
	}

	rules, err := s.ListRules(ctx, businessID)
	require.NoError(t, err)
	require.Len(t, rules, 3)
	for i, name := range names {
		assert.Equal(t, name, rules[i].Name)
	}

	_, err = s.GetRule(ctx, businessID, uuid.New())
	assert.True(t, models.IsNotFound(err))
}

func TestEventStoreCopiesPayloads(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryEventStore()
	businessID := uuid.New()

	payload := models.Payload{"durationMs": models.IntValue(1200)}
	event := models.EventRecord{
		ID:         uuid.New(),
		BusinessID: businessID,
		Payload:    payload,
		ReceivedAt: time.Now().UTC(),
	}
	_, err := s.AddEvent(ctx, event)
	require.NoError(t, err)

	// Mutating the caller's map must not reach the stored record.
	payload["durationMs"] = models.IntValue(9999)

	events, err := s.ListEvents(ctx, businessID)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, models.IntValue(1200), events[0].Payload["durationMs"])
}

func TestAlertStoreFilters(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryAlertStore()
	businessA := uuid.New()
	businessB := uuid.New()

	mkAlert := func(businessID uuid.UUID, status models.AlertStatus) models.Alert {
		return models.Alert{
			ID:         uuid.New(),
			BusinessID: businessID,
			Status:     status,
			CreatedAt:  time.Now().UTC(),
		}
	}

	_, err := s.AddAlert(ctx, mkAlert(businessA, models.AlertStatusOpen))
	require.NoError(t, err)
	_, err = s.AddAlert(ctx, mkAlert(businessA, models.AlertStatusAcked))
	require.NoError(t, err)
	_, err = s.AddAlert(ctx, mkAlert(businessB, models.AlertStatusOpen))
	require.NoError(t, err)

	all, err := s.ListAlerts(ctx, models.AlertFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	forA, err := s.ListAlerts(ctx, models.AlertFilter{BusinessID: businessA})
	require.NoError(t, err)
	assert.Len(t, forA, 2)

	open, err := s.ListAlerts(ctx, models.AlertFilter{Status: models.AlertStatusOpen})
	require.NoError(t, err)
	assert.Len(t, open, 2)

	openA, err := s.ListAlerts(ctx, models.AlertFilter{BusinessID: businessA, Status: models.AlertStatusOpen})
	require.NoError(t, err)
	assert.Len(t, openA, 1)
}

func TestEventStoreConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryEventStore()
	businessID := uuid.New()

	const writers = 8
	const perWriter = 50

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				_, err := s.AddEvent(ctx, models.EventRecord{
					ID:         uuid.New(),
					BusinessID: businessID,
					Payload:    models.Payload{"n": models.IntValue(int64(j))},
				})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	events, err := s.ListEvents(ctx, businessID)
	require.NoError(t, err)
	assert.Len(t, events, writers*perWriter)
}

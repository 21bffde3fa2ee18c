package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"beacon/internal/logger"
	"beacon/internal/metrics"
	"beacon/internal/models"
	"beacon/internal/store"
)

// AlertService provides alert lifecycle operations.
type AlertService struct {
	store store.AlertStore
}

func NewAlertService(s store.AlertStore) *AlertService {
	return &AlertService{store: s}
}

// CreateAlert registers a new open alert. Callers guarantee the rule and
// event identifiers come from the same ingest call.
func (s *AlertService) CreateAlert(ctx context.Context, input models.AlertCreate) (models.Alert, error) {
	alert := models.Alert{
		ID:         uuid.New(),
		BusinessID: input.BusinessID,
		RuleID:     input.RuleID,
		EventID:    input.EventID,
		Message:    input.Message,
		Severity:   input.Severity,
		Status:     models.AlertStatusOpen,
		CreatedAt:  time.Now().UTC(),
	}
	stored, err := s.store.AddAlert(ctx, alert)
	if err != nil {
		return models.Alert{}, err
	}
	metrics.AlertsGeneratedTotal.WithLabelValues(string(alert.Severity)).Inc()
	return stored, nil
}

func (s *AlertService) ListAlerts(ctx context.Context, filter models.AlertFilter) ([]models.Alert, error) {
	return s.store.ListAlerts(ctx, filter)
}

func (s *AlertService) GetAlert(ctx context.Context, id uuid.UUID) (models.Alert, error) {
	return s.store.GetAlert(ctx, id)
}

// Acknowledge transitions an alert to acked, recording who and when.
// Re-acknowledging an acked alert is an idempotent overwrite that refreshes
// actor and timestamp. A closed alert cannot be acknowledged.
func (s *AlertService) Acknowledge(ctx context.Context, id uuid.UUID, actor string) (models.Alert, error) {
	if actor == "" {
		return models.Alert{}, &models.ValidationError{Field: "actor", Message: "actor cannot be empty"}
	}

	alert, err := s.store.GetAlert(ctx, id)
	if err != nil {
		return models.Alert{}, err
	}
	if alert.Status == models.AlertStatusClosed {
		return models.Alert{}, &models.ValidationError{Message: "cannot acknowledge a closed alert"}
	}

	now := time.Now().UTC()
	alert.Status = models.AlertStatusAcked
	alert.AcknowledgedAt = &now
	alert.AcknowledgedBy = actor

	updated, err := s.store.UpdateAlert(ctx, alert)
	if err != nil {
		return models.Alert{}, err
	}
	metrics.AlertsAcknowledgedTotal.Inc()

	log := logger.WithComponent("alert_service")
	log.Info().
		Str("alert_id", id.String()).
		Str("actor", actor).
		Msg("alert acknowledged")
	return updated, nil
}

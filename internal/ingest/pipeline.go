// Package ingest implements the event ingestion pipeline: schema lookup,
// payload normalization, event persistence, rule dispatch, and alert
// generation, composed into one synchronous request.
package ingest

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"beacon/internal/engine"
	"beacon/internal/logger"
	"beacon/internal/metrics"
	"beacon/internal/models"
	"beacon/internal/notify"
	"beacon/internal/service"
	"beacon/internal/state"
	"beacon/internal/store"
)

// Pipeline ties the schema store, normalizer, event store, dispatcher and
// alert sink into one ingest operation. It is safe for concurrent use.
type Pipeline struct {
	businesses store.BusinessStore
	events     store.EventStore
	dispatcher *engine.Dispatcher
	alerts     *service.AlertService
	cooldowns  state.Tracker
	notifier   notify.Notifier
}

// Config wires the pipeline's collaborators. Cooldowns may be nil to
// disable suppression; Notifier may be nil for no outbound fan-out.
type Config struct {
	Businesses store.BusinessStore
	Events     store.EventStore
	Dispatcher *engine.Dispatcher
	Alerts     *service.AlertService
	Cooldowns  state.Tracker
	Notifier   notify.Notifier
}

func NewPipeline(cfg Config) *Pipeline {
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = notify.NewNoopNotifier()
	}
	return &Pipeline{
		businesses: cfg.Businesses,
		events:     cfg.Events,
		dispatcher: cfg.Dispatcher,
		alerts:     cfg.Alerts,
		cooldowns:  cfg.Cooldowns,
		notifier:   notifier,
	}
}

// Ingest runs one event through the pipeline and returns the stored event
// together with the messages of the alerts it generated, in match order.
//
// A business-not-found or validation failure aborts before anything is
// written. Once the event is persisted its persistence is final; a failure
// after that point returns the stored event together with the error.
func (p *Pipeline) Ingest(ctx context.Context, businessID uuid.UUID, payload map[string]models.Value) (models.EventRecord, []string, error) {
	log := logger.WithBusiness(businessID.String()).With().
		Str("component", "ingest").
		Logger()

	business, err := p.businesses.GetBusiness(ctx, businessID)
	if err != nil {
		metrics.IngestEventsTotal.WithLabelValues(businessID.String(), "rejected").Inc()
		return models.EventRecord{}, nil, err
	}

	fields, err := p.businesses.ListFields(ctx, businessID)
	if err != nil {
		return models.EventRecord{}, nil, err
	}

	normalized, err := engine.Normalize(payload, fields)
	if err != nil {
		metrics.IngestEventsTotal.WithLabelValues(businessID.String(), "rejected").Inc()
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			metrics.IngestValidationErrors.WithLabelValues(ve.Reason).Inc()
			log.Debug().
				Str("field", ve.Field).
				Str("reason", ve.Reason).
				Msg("payload rejected")
		}
		return models.EventRecord{}, nil, err
	}

	event := models.EventRecord{
		ID:         uuid.New(),
		BusinessID: business.ID,
		Payload:    normalized,
		ReceivedAt: time.Now().UTC(),
	}
	stored, err := p.events.AddEvent(ctx, event)
	if err != nil {
		return models.EventRecord{}, nil, err
	}

	matched, err := p.dispatcher.Dispatch(ctx, businessID, stored)
	if err != nil {
		// The event is already persisted; return it with the failure so
		// the caller can tell the write happened.
		return stored, nil, err
	}

	messages := make([]string, 0, len(matched))
	for _, rule := range matched {
		alert, err := p.alerts.CreateAlert(ctx, models.AlertCreate{
			BusinessID: businessID,
			RuleID:     rule.ID,
			EventID:    stored.ID,
			Message:    "Rule '" + rule.Name + "' triggered",
			Severity:   rule.Severity,
		})
		if err != nil {
			return stored, messages, err
		}
		messages = append(messages, alert.Message)

		if rule.CooldownSeconds > 0 && p.cooldowns != nil {
			if err := p.cooldowns.Mark(ctx, rule.ID.String(), rule.Cooldown()); err != nil {
				log.Warn().Err(err).
					Str("rule_id", rule.ID.String()).
					Msg("failed to mark cooldown")
			}
		}

		// Best-effort fan-out; a notifier failure never fails the ingest.
		if err := p.notifier.PublishAlert(ctx, alert); err != nil {
			log.Warn().Err(err).
				Str("alert_id", alert.ID.String()).
				Msg("failed to publish alert notification")
		}
	}

	metrics.IngestEventsTotal.WithLabelValues(businessID.String(), "accepted").Inc()
	log.Info().
		Str("event_id", stored.ID.String()).
		Int("alerts", len(messages)).
		Msg("event ingested")
	return stored, messages, nil
}

// ListEvents returns every event ingested for a business, in arrival order.
func (p *Pipeline) ListEvents(ctx context.Context, businessID uuid.UUID) ([]models.EventRecord, error) {
	if _, err := p.businesses.GetBusiness(ctx, businessID); err != nil {
		return nil, err
	}
	return p.events.ListEvents(ctx, businessID)
}

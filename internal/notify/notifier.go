// Package notify fans generated alerts out to external consumers. The
// pipeline treats publishing as best-effort: a notifier failure is logged
// and never fails the ingest call that produced the alert.
package notify

import (
	"context"

	"beacon/internal/models"
)

// Notifier delivers a generated alert to an external channel.
type Notifier interface {
	PublishAlert(ctx context.Context, alert models.Alert) error
	Close() error
}

type noopNotifier struct{}

// NewNoopNotifier returns a notifier that drops every alert. Used when no
// outbound channel is configured.
func NewNoopNotifier() Notifier { return &noopNotifier{} }

func (n *noopNotifier) PublishAlert(ctx context.Context, alert models.Alert) error { return nil }
func (n *noopNotifier) Close() error                                               { return nil }

package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beacon/internal/models"
)

func TestNoopNotifier(t *testing.T) {
	n := NewNoopNotifier()
	assert.NoError(t, n.PublishAlert(context.Background(), models.Alert{}))
	assert.NoError(t, n.Close())
}

func TestNewKafkaNotifierValidatesConfig(t *testing.T) {
	_, err := NewKafkaNotifier(KafkaConfig{Topic: "alerts"})
	assert.Error(t, err, "missing brokers should be rejected")

	_, err = NewKafkaNotifier(KafkaConfig{Brokers: []string{"localhost:9092"}})
	assert.Error(t, err, "missing topic should be rejected")
}

func TestNewKafkaNotifierAppliesDefaults(t *testing.T) {
	n, err := NewKafkaNotifier(KafkaConfig{
		Brokers: []string{"localhost:9092"},
		Topic:   "alerts",
	})
	require.NoError(t, err)
	defer n.Close()

	assert.Equal(t, 2, n.cfg.PoolSize)
	assert.Equal(t, 100*time.Millisecond, n.cfg.RetryBackoff)
	assert.Equal(t, 5*time.Second, n.cfg.WriteTimeout)
	assert.Len(t, n.writers, 2)
}

func TestKafkaNotifierRejectsPublishAfterClose(t *testing.T) {
	n, err := NewKafkaNotifier(KafkaConfig{
		Brokers: []string{"localhost:9092"},
		Topic:   "alerts",
	})
	require.NoError(t, err)
	require.NoError(t, n.Close())

	err = n.PublishAlert(context.Background(), models.Alert{})
	assert.ErrorIs(t, err, ErrNotifierClosed)

	// Closing twice is safe.
	assert.NoError(t, n.Close())
}

func TestGetCompression(t *testing.T) {
	assert.NotEqual(t, getCompression("gzip"), getCompression("none"))
	assert.Equal(t, getCompression("unknown"), getCompression(""))
}

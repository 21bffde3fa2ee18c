package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"

	"beacon/internal/logger"
	"beacon/internal/metrics"
	"beacon/internal/models"
)

// Notifier errors
var (
	ErrNotifierClosed  = errors.New("notifier is closed")
	ErrSerializeFailed = errors.New("failed to serialize alert")
)

// KafkaConfig holds the outbound alert topic configuration.
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	PoolSize     int
	MaxRetries   int
	RetryBackoff time.Duration
	WriteTimeout time.Duration
	Compression  string
}

// KafkaNotifier publishes alert JSON to a Kafka topic, partitioned by
// business so one business's alerts stay ordered.
type KafkaNotifier struct {
	cfg     KafkaConfig
	writers []*kafka.Writer
	pool    chan *kafka.Writer
	closed  atomic.Bool

	published atomic.Uint64
	failed    atomic.Uint64
}

// NewKafkaNotifier creates a notifier with a pool of writers.
func NewKafkaNotifier(cfg KafkaConfig) (*KafkaNotifier, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("at least one broker is required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("topic is required")
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 2
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = 100 * time.Millisecond
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 5 * time.Second
	}

	n := &KafkaNotifier{
		cfg:     cfg,
		writers: make([]*kafka.Writer, cfg.PoolSize),
		pool:    make(chan *kafka.Writer, cfg.PoolSize),
	}

	for i := 0; i < cfg.PoolSize; i++ {
		writer := &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{}, // Partition by key
			WriteTimeout: cfg.WriteTimeout,
			RequiredAcks: kafka.RequireOne,
			Compression:  getCompression(cfg.Compression),
			MaxAttempts:  1, // retries handled here, with backoff
			Async:        false,
		}
		n.writers[i] = writer
		n.pool <- writer
	}
	return n, nil
}

// getCompression returns the kafka compression codec
func getCompression(name string) compress.Compression {
	switch name {
	case "gzip":
		return compress.Gzip
	case "snappy":
		return compress.Snappy
	case "lz4":
		return compress.Lz4
	case "zstd":
		return compress.Zstd
	default:
		return compress.None
	}
}

// PublishAlert sends one alert to the topic.
func (n *KafkaNotifier) PublishAlert(ctx context.Context, alert models.Alert) error {
	if n.closed.Load() {
		return ErrNotifierClosed
	}

	data, err := json.Marshal(alert)
	if err != nil {
		n.failed.Add(1)
		return fmt.Errorf("%w: %v", ErrSerializeFailed, err)
	}

	msg := kafka.Message{
		Key:   []byte(alert.BusinessID.String()),
		Value: data,
		Headers: []kafka.Header{
			{Key: "business_id", Value: []byte(alert.BusinessID.String())},
			{Key: "alert_id", Value: []byte(alert.ID.String())},
			{Key: "severity", Value: []byte(alert.Severity)},
		},
		Time: alert.CreatedAt,
	}

	var writer *kafka.Writer
	select {
	case writer = <-n.pool:
		defer func() { n.pool <- writer }()
	case <-ctx.Done():
		n.failed.Add(1)
		return ctx.Err()
	}

	start := time.Now()
	err = n.publishWithRetry(ctx, writer, msg)
	metrics.NotifierPublishDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		n.failed.Add(1)
		metrics.NotifierPublishTotal.WithLabelValues("failed").Inc()
		return err
	}

	n.published.Add(1)
	metrics.NotifierPublishTotal.WithLabelValues("success").Inc()
	metrics.NotifierBytesWritten.Add(float64(len(data)))
	return nil
}

// publishWithRetry publishes a message with exponential backoff retry
func (n *KafkaNotifier) publishWithRetry(ctx context.Context, writer *kafka.Writer, msg kafka.Message) error {
	log := logger.WithComponent("kafka_notifier")
	var lastErr error
	backoff := n.cfg.RetryBackoff

	for attempt := 0; attempt <= n.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			log.Warn().
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Msg("retrying alert publish")

			select {
			case <-time.After(backoff):
				backoff *= 2
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err := writer.WriteMessages(ctx, msg)
		if err == nil {
			return nil
		}

		lastErr = err
		log.Warn().
			Err(err).
			Int("attempt", attempt+1).
			Msg("alert publish attempt failed")
	}
	return lastErr
}

// Stats returns publish counters.
func (n *KafkaNotifier) Stats() (published, failed uint64) {
	return n.published.Load(), n.failed.Load()
}

// Close shuts down the writer pool.
func (n *KafkaNotifier) Close() error {
	if n.closed.Swap(true) {
		return nil
	}
	var firstErr error
	for _, writer := range n.writers {
		if err := writer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

var _ Notifier = (*KafkaNotifier)(nil)

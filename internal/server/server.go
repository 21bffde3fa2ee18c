// Package server wires the stores, services, engine and pipeline together
// and owns the HTTP server lifecycle. All dependencies are constructed once
// here and passed down explicitly; nothing reaches for ambient globals.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"beacon/internal/config"
	"beacon/internal/engine"
	"beacon/internal/handlers"
	"beacon/internal/ingest"
	"beacon/internal/logger"
	"beacon/internal/middleware"
	"beacon/internal/notify"
	"beacon/internal/service"
	"beacon/internal/state"
	"beacon/internal/store"
)

// Server is the high-level coordinator for the beacon process.
type Server struct {
	cfg        *config.Config
	httpServer *http.Server
	notifier   notify.Notifier
	cooldowns  state.Tracker
	startedAt  time.Time
}

// New constructs a Server with the given config.
func New(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

// Run starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	log := logger.WithComponent("server")
	log.Info().Msg("server starting")
	s.startedAt = time.Now().UTC()

	if err := s.initCooldowns(ctx); err != nil {
		return fmt.Errorf("failed to initialize cooldown tracker: %w", err)
	}
	defer s.cooldowns.Close()

	if err := s.initNotifier(); err != nil {
		return fmt.Errorf("failed to initialize notifier: %w", err)
	}
	defer s.notifier.Close()

	s.initHTTPServer()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.cfg.Server.Addr).Msg("starting HTTP server")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

// initCooldowns selects the cooldown backend from config.
func (s *Server) initCooldowns(ctx context.Context) error {
	log := logger.WithComponent("server")
	switch s.cfg.Cooldown.Backend {
	case "redis":
		tracker := state.NewRedisTracker(s.cfg.Cooldown.RedisAddr)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := tracker.Ping(pingCtx); err != nil {
			return err
		}
		s.cooldowns = tracker
		log.Info().Str("addr", s.cfg.Cooldown.RedisAddr).Msg("redis cooldown tracker initialized")
	default:
		s.cooldowns = state.NewMemoryTracker()
		log.Info().Msg("in-memory cooldown tracker initialized")
	}
	return nil
}

// initNotifier builds the alert fan-out channel.
func (s *Server) initNotifier() error {
	log := logger.WithComponent("server")
	if !s.cfg.Notifier.Enabled {
		s.notifier = notify.NewNoopNotifier()
		log.Info().Msg("alert notifier disabled")
		return nil
	}

	notifier, err := notify.NewKafkaNotifier(notify.KafkaConfig{
		Brokers:      s.cfg.Notifier.Brokers,
		Topic:        s.cfg.Notifier.Topic,
		PoolSize:     s.cfg.Notifier.PoolSize,
		MaxRetries:   s.cfg.Notifier.MaxRetries,
		RetryBackoff: s.cfg.Notifier.RetryBackoffD,
		WriteTimeout: s.cfg.Notifier.WriteTimeoutD,
		Compression:  s.cfg.Notifier.Compression,
	})
	if err != nil {
		return err
	}
	s.notifier = notifier
	log.Info().
		Strs("brokers", s.cfg.Notifier.Brokers).
		Str("topic", s.cfg.Notifier.Topic).
		Msg("kafka alert notifier initialized")
	return nil
}

// initHTTPServer builds the dependency graph and the router.
func (s *Server) initHTTPServer() {
	businessStore := store.NewMemoryBusinessStore()
	ruleStore := store.NewMemoryRuleStore()
	eventStore := store.NewMemoryEventStore()
	alertStore := store.NewMemoryAlertStore()

	businessService := service.NewBusinessService(businessStore)
	ruleService := service.NewRuleService(ruleStore, businessStore)
	alertService := service.NewAlertService(alertStore)

	dispatcher := engine.NewDispatcher(ruleStore, s.cooldowns)
	pipeline := ingest.NewPipeline(ingest.Config{
		Businesses: businessStore,
		Events:     eventStore,
		Dispatcher: dispatcher,
		Alerts:     alertService,
		Cooldowns:  s.cooldowns,
		Notifier:   s.notifier,
	})

	handler := &handlers.Handler{
		Businesses:  businessService,
		Rules:       ruleService,
		Alerts:      alertService,
		Pipeline:    pipeline,
		MaxBodySize: s.cfg.Server.MaxBodySize,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)

	r.Get("/health", s.healthHandler)
	r.Get("/stats", s.statsHandler)
	r.Handle("/metrics", promhttp.Handler())
	handler.RegisterRoutes(r)

	s.httpServer = &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  s.cfg.Server.ReadTimeoutD,
		WriteTimeout: s.cfg.Server.WriteTimeoutD,
	}
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	published, failed := uint64(0), uint64(0)
	if kn, ok := s.notifier.(*notify.KafkaNotifier); ok {
		published, failed = kn.Stats()
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"uptime_seconds":%d,"notifications_published":%d,"notifications_failed":%d}`,
		int(time.Since(s.startedAt).Seconds()), published, failed)
}

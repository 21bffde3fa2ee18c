// Package handlers implements the HTTP boundary. Handlers decode JSON,
// delegate to the services and the ingestion pipeline, and translate the
// typed domain errors into status codes exactly once, here.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"beacon/internal/ingest"
	"beacon/internal/logger"
	"beacon/internal/models"
	"beacon/internal/service"
)

// Handler bundles the services behind the HTTP API.
type Handler struct {
	Businesses  *service.BusinessService
	Rules       *service.RuleService
	Alerts      *service.AlertService
	Pipeline    *ingest.Pipeline
	MaxBodySize int64
}

// RegisterRoutes mounts every resource route on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/businesses", func(r chi.Router) {
		r.Post("/", h.handleBusinessCreate)
		r.Get("/", h.handleBusinessList)
		r.Get("/{businessID}", h.handleBusinessGet)
		r.Patch("/{businessID}", h.handleBusinessUpdate)
		r.Post("/{businessID}/fields", h.handleFieldCreate)
		r.Get("/{businessID}/fields", h.handleFieldList)
	})
	r.Route("/rules/{businessID}", func(r chi.Router) {
		r.Post("/", h.handleRuleCreate)
		r.Get("/", h.handleRuleList)
		r.Get("/{ruleID}", h.handleRuleGet)
	})
	r.Route("/ingest/{businessID}", func(r chi.Router) {
		r.Post("/", h.handleIngest)
		r.Get("/", h.handleEventList)
	})
	r.Route("/alerts", func(r chi.Router) {
		r.Get("/", h.handleAlertList)
		r.Get("/{alertID}", h.handleAlertGet)
		r.Post("/{alertID}/ack", h.handleAlertAck)
	})
}

// decodeJSON reads a bounded JSON body into dst.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	maxBody := h.MaxBodySize
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// urlUUID parses a uuid path parameter.
func urlUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// writeJSON writes a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log := logger.WithComponent("handlers")
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// writeError writes an error response
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}

// writeDomainError maps a typed domain error to a response without
// inspecting which entity or field produced it.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case models.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	case models.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case models.IsConflict(err):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, http.ErrHandlerTimeout):
		writeError(w, http.StatusServiceUnavailable, "request timed out")
	default:
		log := logger.WithComponent("handlers")
		log.Error().Err(err).Msg("unexpected error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

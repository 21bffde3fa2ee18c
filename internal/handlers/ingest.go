package handlers

import (
	"net/http"

	"beacon/internal/models"
)

// IngestResponse is returned for a successful ingest call.
type IngestResponse struct {
	Event  models.EventRecord `json:"event"`
	Alerts []string           `json:"alerts"`
}

// EventListResponse wraps the event listing.
type EventListResponse struct {
	Events []models.EventRecord `json:"events"`
}

func (h *Handler) handleIngest(w http.ResponseWriter, r *http.Request) {
	businessID, err := urlUUID(r, "businessID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var input models.EventIngest
	if err := h.decodeJSON(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if input.Payload == nil {
		writeError(w, http.StatusBadRequest, "payload is required")
		return
	}

	event, alerts, err := h.Pipeline.Ingest(r.Context(), businessID, input.Payload)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if alerts == nil {
		alerts = []string{}
	}
	writeJSON(w, http.StatusOK, IngestResponse{Event: event, Alerts: alerts})
}

func (h *Handler) handleEventList(w http.ResponseWriter, r *http.Request) {
	businessID, err := urlUUID(r, "businessID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	events, err := h.Pipeline.ListEvents(r.Context(), businessID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, EventListResponse{Events: events})
}

package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"beacon/internal/models"
)

// AcknowledgeRequest names the actor acknowledging an alert.
type AcknowledgeRequest struct {
	Actor string `json:"actor"`
}

func (h *Handler) handleAlertList(w http.ResponseWriter, r *http.Request) {
	var filter models.AlertFilter

	if raw := r.URL.Query().Get("business_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid business_id")
			return
		}
		filter.BusinessID = id
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := models.AlertStatus(raw)
		if !status.IsValid() {
			writeError(w, http.StatusBadRequest, "invalid status")
			return
		}
		filter.Status = status
	}

	alerts, err := h.Alerts.ListAlerts(r.Context(), filter)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

func (h *Handler) handleAlertGet(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "alertID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	alert, err := h.Alerts.GetAlert(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, alert)
}

func (h *Handler) handleAlertAck(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "alertID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var input AcknowledgeRequest
	if err := h.decodeJSON(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	alert, err := h.Alerts.Acknowledge(r.Context(), id, input.Actor)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, alert)
}

package handlers

import (
	"net/http"

	"beacon/internal/models"
)

func (h *Handler) handleRuleCreate(w http.ResponseWriter, r *http.Request) {
	businessID, err := urlUUID(r, "businessID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var input models.RuleCreate
	if err := h.decodeJSON(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rule, err := h.Rules.CreateRule(r.Context(), businessID, input)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rule)
}

func (h *Handler) handleRuleList(w http.ResponseWriter, r *http.Request) {
	businessID, err := urlUUID(r, "businessID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rules, err := h.Rules.ListRules(r.Context(), businessID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rules)
}

func (h *Handler) handleRuleGet(w http.ResponseWriter, r *http.Request) {
	businessID, err := urlUUID(r, "businessID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ruleID, err := urlUUID(r, "ruleID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rule, err := h.Rules.GetRule(r.Context(), businessID, ruleID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rule)
}

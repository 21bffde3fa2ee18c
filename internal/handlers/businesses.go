package handlers

import (
	"net/http"

	"beacon/internal/models"
)

func (h *Handler) handleBusinessCreate(w http.ResponseWriter, r *http.Request) {
	var input models.BusinessCreate
	if err := h.decodeJSON(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	business, err := h.Businesses.CreateBusiness(r.Context(), input)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, business)
}

func (h *Handler) handleBusinessList(w http.ResponseWriter, r *http.Request) {
	businesses, err := h.Businesses.ListBusinesses(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, businesses)
}

func (h *Handler) handleBusinessGet(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "businessID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	business, err := h.Businesses.GetBusiness(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, business)
}

func (h *Handler) handleBusinessUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "businessID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var input models.BusinessUpdate
	if err := h.decodeJSON(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	business, err := h.Businesses.UpdateBusiness(r.Context(), id, input)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, business)
}

func (h *Handler) handleFieldCreate(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "businessID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var input models.FieldCreate
	if err := h.decodeJSON(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	field, err := h.Businesses.AddField(r.Context(), id, input)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, field)
}

func (h *Handler) handleFieldList(w http.ResponseWriter, r *http.Request) {
	id, err := urlUUID(r, "businessID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	fields, err := h.Businesses.ListFields(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fields)
}

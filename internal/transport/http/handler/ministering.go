package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quorumflow-api/internal/application/ministering"
	"github.com/quorumflow-api/internal/domain"
	"github.com/quorumflow-api/internal/pkg/validate"
)

// MinisteringHandler handles companionship endpoints.
type MinisteringHandler struct {
	svc ministering.Service
}

func NewMinisteringHandler(svc ministering.Service) *MinisteringHandler {
	return &MinisteringHandler{svc: svc}
}

func (h *MinisteringHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCompanionshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *MinisteringHandler) List(w http.ResponseWriter, r *http.Request) {
	companionships, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, companionships)
}

func (h *MinisteringHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *MinisteringHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateCompanionshipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *MinisteringHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "companionship deleted"})
}

// ListUrgent surfaces families flagged urgent across all companionships.
func (h *MinisteringHandler) ListUrgent(w http.ResponseWriter, r *http.Request) {
	urgent, err := h.svc.ListUrgent(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, urgent)
}

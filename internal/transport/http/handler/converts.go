package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/quorumflow-api/internal/application/convert"
	"github.com/quorumflow-api/internal/domain"
	"github.com/quorumflow-api/internal/pkg/validate"
)

// ConvertHandler handles converts, future members and the merged baptism view.
type ConvertHandler struct {
	svc convert.Service
}

func NewConvertHandler(svc convert.Service) *ConvertHandler { return &ConvertHandler{svc: svc} }

func (h *ConvertHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateConvertRequest
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

func (h *ConvertHandler) List(w http.ResponseWriter, r *http.Request) {
	converts, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, converts)
}

func (h *ConvertHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ConvertHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateConvertRequest
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

func (h *ConvertHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "convert deleted"})
}

func (h *ConvertHandler) CreateFutureMember(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateFutureMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	fm, err := h.svc.CreateFutureMember(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, fm)
}

func (h *ConvertHandler) ListFutureMembers(w http.ResponseWriter, r *http.Request) {
	futureMembers, err := h.svc.ListFutureMembers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, futureMembers)
}

func (h *ConvertHandler) GetFutureMember(w http.ResponseWriter, r *http.Request) {
	fm, err := h.svc.GetFutureMember(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fm)
}

func (h *ConvertHandler) UpdateFutureMember(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateFutureMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	fm, err := h.svc.UpdateFutureMember(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fm)
}

func (h *ConvertHandler) DeleteFutureMember(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteFutureMember(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "future member deleted"})
}

// ListBaptisms serves the merged view; ?year=YYYY narrows it to one year.
func (h *ConvertHandler) ListBaptisms(w http.ResponseWriter, r *http.Request) {
	year := 0
	if raw := r.URL.Query().Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "year must be numeric")
			return
		}
		year = parsed
	}
	baptisms, err := h.svc.ListBaptisms(r.Context(), year)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, baptisms)
}

package handler

import (
	"net/http"

	"github.com/student-records-api/internal/application/mark"
	"github.com/student-records-api/internal/domain"
	"github.com/student-records-api/internal/transport/http/middleware"
)

type MarkHandler struct {
	svc mark.Service
}

func NewMarkHandler(svc mark.Service) *MarkHandler { return &MarkHandler{svc: svc} }

func (h *MarkHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *MarkHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.MarkInput
	if !decode(w, r, &in) {
		return
	}
	m, err := h.svc.Create(r.Context(), middleware.UserID(r.Context()), in)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *MarkHandler) Update(w http.ResponseWriter, r *http.Request) {
	recordID, err := pathID(r)
	if err != nil {
		httpError(w, r, err)
		return
	}
	var in domain.MarkInput
	if !decode(w, r, &in) {
		return
	}
	m, err := h.svc.Update(r.Context(), middleware.UserID(r.Context()), recordID, in)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *MarkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	recordID, err := pathID(r)
	if err != nil {
		httpError(w, r, err)
		return
	}
	if err = h.svc.Delete(r.Context(), middleware.UserID(r.Context()), recordID); err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Marks deleted"})
}

package handler

import (
	"net/http"

	"github.com/student-records-api/internal/application/student"
	"github.com/student-records-api/internal/domain"
	"github.com/student-records-api/internal/transport/http/middleware"
)

// StudentHandler serves the caller's students.
type StudentHandler struct {
	svc student.Service
}

func NewStudentHandler(svc student.Service) *StudentHandler { return &StudentHandler{svc: svc} }

func (h *StudentHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *StudentHandler) Get(w http.ResponseWriter, r *http.Request) {
	recordID, err := pathID(r)
	if err != nil {
		httpError(w, r, err)
		return
	}
	st, err := h.svc.Get(r.Context(), middleware.UserID(r.Context()), recordID)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *StudentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.StudentInput
	if !decode(w, r, &in) {
		return
	}
	st, err := h.svc.Create(r.Context(), middleware.UserID(r.Context()), in)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

func (h *StudentHandler) Update(w http.ResponseWriter, r *http.Request) {
	recordID, err := pathID(r)
	if err != nil {
		httpError(w, r, err)
		return
	}
	var in domain.StudentInput
	if !decode(w, r, &in) {
		return
	}
	st, err := h.svc.Update(r.Context(), middleware.UserID(r.Context()), recordID, in)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *StudentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	recordID, err := pathID(r)
	if err != nil {
		httpError(w, r, err)
		return
	}
	if err = h.svc.Delete(r.Context(), middleware.UserID(r.Context()), recordID); err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Student deleted"})
}

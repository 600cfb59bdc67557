package handler

import (
	"errors"
	"net/http"

	"github.com/student-records-api/internal/application/enrollment"
	"github.com/student-records-api/internal/domain"
	"github.com/student-records-api/internal/transport/http/middleware"
)

type EnrollmentHandler struct {
	svc enrollment.Service
}

func NewEnrollmentHandler(svc enrollment.Service) *EnrollmentHandler {
	return &EnrollmentHandler{svc: svc}
}

func (h *EnrollmentHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *EnrollmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.EnrollmentInput
	if !decode(w, r, &in) {
		return
	}
	e, err := h.svc.Create(r.Context(), middleware.UserID(r.Context()), in)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}

func (h *EnrollmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	enrollmentID, err := pathID(r)
	if err == nil {
		err = h.svc.Delete(r.Context(), middleware.UserID(r.Context()), enrollmentID)
	}
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Enrollment not found")
		return
	}
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Enrollment deleted"})
}

package handler

import (
	"net/http"

	"github.com/student-records-api/internal/application/course"
	"github.com/student-records-api/internal/domain"
	"github.com/student-records-api/internal/transport/http/middleware"
)

type CourseHandler struct {
	svc course.Service
}

func NewCourseHandler(svc course.Service) *CourseHandler { return &CourseHandler{svc: svc} }

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context(), middleware.UserID(r.Context()))
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in domain.CourseInput
	if !decode(w, r, &in) {
		return
	}
	c, err := h.svc.Create(r.Context(), middleware.UserID(r.Context()), in)
	if err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CourseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	recordID, err := pathID(r)
	if err != nil {
		httpError(w, r, err)
		return
	}
	if err = h.svc.Delete(r.Context(), middleware.UserID(r.Context()), recordID); err != nil {
		httpError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Course deleted"})
}

package enrollment

import (
	"context"
	"errors"
	"fmt"

	"github.com/student-records-api/internal/domain"
	"github.com/student-records-api/internal/pkg/id"
)

type Service interface {
	List(ctx context.Context, ownerID string) ([]domain.Enrollment, error)
	Create(ctx context.Context, ownerID string, in domain.EnrollmentInput) (*domain.Enrollment, error)
	Delete(ctx context.Context, ownerID, enrollmentID string) error
}

type enrollmentStore interface {
	List(ctx context.Context, ownerID string) ([]domain.Enrollment, error)
	Insert(ctx context.Context, e *domain.Enrollment) error
	Delete(ctx context.Context, ownerID, enrollmentID string) error
}

type studentLookup interface {
	Get(ctx context.Context, ownerID, studentID string) (*domain.Student, error)
}

type courseLookup interface {
	Get(ctx context.Context, ownerID, courseID string) (*domain.Course, error)
}

type ServiceDeps struct {
	Enrollments enrollmentStore
	Students    studentLookup
	Courses     courseLookup
}

type service struct {
	enrollments enrollmentStore
	students    studentLookup
	courses     courseLookup
}

func NewService(deps ServiceDeps) Service {
	return &service{enrollments: deps.Enrollments, students: deps.Students, courses: deps.Courses}
}

func (s *service) List(ctx context.Context, ownerID string) ([]domain.Enrollment, error) {
	return s.enrollments.List(ctx, ownerID)
}

// Create rejects references the caller does not own as invalid input, then
// returns the stored row joined with the student and course names.
func (s *service) Create(ctx context.Context, ownerID string, in domain.EnrollmentInput) (*domain.Enrollment, error) {
	st, err := s.students.Get(ctx, ownerID, in.StudentID)
	if err != nil {
		return nil, invalidRef("student_id", err)
	}
	c, err := s.courses.Get(ctx, ownerID, in.CourseID)
	if err != nil {
		return nil, invalidRef("course_id", err)
	}

	e := &domain.Enrollment{
		EnrollmentID: id.New(),
		OwnerID:      ownerID,
		StudentID:    st.StudentID,
		CourseID:     c.CourseID,
		FirstName:    st.FirstName,
		LastName:     st.LastName,
		CourseName:   c.Name,
	}
	if err := s.enrollments.Insert(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) Delete(ctx context.Context, ownerID, enrollmentID string) error {
	if err := s.enrollments.Delete(ctx, ownerID, enrollmentID); err != nil {
		return fmt.Errorf("enrollment %s: %w", enrollmentID, err)
	}
	return nil
}

func invalidRef(field string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Reason(domain.ErrValidation, "invalid "+field)
	}
	return err
}

package mark

import (
	"context"
	"errors"
	"fmt"

	"github.com/student-records-api/internal/domain"
	"github.com/student-records-api/internal/pkg/id"
)

type Service interface {
	List(ctx context.Context, ownerID string) ([]domain.Mark, error)
	Create(ctx context.Context, ownerID string, in domain.MarkInput) (*domain.Mark, error)
	Update(ctx context.Context, ownerID, markID string, in domain.MarkInput) (*domain.Mark, error)
	Delete(ctx context.Context, ownerID, markID string) error
}

type markStore interface {
	List(ctx context.Context, ownerID string) ([]domain.Mark, error)
	Get(ctx context.Context, ownerID, markID string) (*domain.Mark, error)
	Insert(ctx context.Context, m *domain.Mark) error
	Update(ctx context.Context, m *domain.Mark) error
	Delete(ctx context.Context, ownerID, markID string) error
}

type studentLookup interface {
	Get(ctx context.Context, ownerID, studentID string) (*domain.Student, error)
}

type courseLookup interface {
	Get(ctx context.Context, ownerID, courseID string) (*domain.Course, error)
}

type ServiceDeps struct {
	Marks    markStore
	Students studentLookup
	Courses  courseLookup
}

type service struct {
	marks    markStore
	students studentLookup
	courses  courseLookup
}

func NewService(deps ServiceDeps) Service {
	return &service{marks: deps.Marks, students: deps.Students, courses: deps.Courses}
}

func (s *service) List(ctx context.Context, ownerID string) ([]domain.Mark, error) {
	return s.marks.List(ctx, ownerID)
}

func (s *service) Create(ctx context.Context, ownerID string, in domain.MarkInput) (*domain.Mark, error) {
	m := &domain.Mark{MarkID: id.New(), OwnerID: ownerID}
	if err := s.resolve(ctx, m, in); err != nil {
		return nil, err
	}
	if err := s.marks.Insert(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) Update(ctx context.Context, ownerID, markID string, in domain.MarkInput) (*domain.Mark, error) {
	m, err := s.marks.Get(ctx, ownerID, markID)
	if err != nil {
		return nil, fmt.Errorf("mark %s: %w", markID, err)
	}
	if err := s.resolve(ctx, m, in); err != nil {
		return nil, err
	}
	if err := s.marks.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) Delete(ctx context.Context, ownerID, markID string) error {
	if err := s.marks.Delete(ctx, ownerID, markID); err != nil {
		return fmt.Errorf("mark %s: %w", markID, err)
	}
	return nil
}

// resolve copies in onto m after checking both references belong to m's owner.
func (s *service) resolve(ctx context.Context, m *domain.Mark, in domain.MarkInput) error {
	if in.Marks == nil || *in.Marks < 0 || *in.Marks > 100 {
		return domain.Reason(domain.ErrValidation, "marks must be between 0 and 100")
	}
	st, err := s.students.Get(ctx, m.OwnerID, in.StudentID)
	if err != nil {
		return invalidRef("student_id", err)
	}
	c, err := s.courses.Get(ctx, m.OwnerID, in.CourseID)
	if err != nil {
		return invalidRef("course_id", err)
	}
	m.StudentID = st.StudentID
	m.CourseID = c.CourseID
	m.Marks = *in.Marks
	m.Semester = in.Semester
	m.FirstName = st.FirstName
	m.LastName = st.LastName
	m.CourseName = c.Name
	return nil
}

func invalidRef(field string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Reason(domain.ErrValidation, "invalid "+field)
	}
	return err
}

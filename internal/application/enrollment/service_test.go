package enrollment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/student-records-api/internal/domain"
	"github.com/student-records-api/internal/pkg/date"
)

type mockEnrollments struct{ mock.Mock }

func (m *mockEnrollments) List(ctx context.Context, ownerID string) ([]domain.Enrollment, error) {
	args := m.Called(ctx, ownerID)
	out, _ := args.Get(0).([]domain.Enrollment)
	return out, args.Error(1)
}
func (m *mockEnrollments) Insert(ctx context.Context, e *domain.Enrollment) error {
	return m.Called(ctx, e).Error(0)
}
func (m *mockEnrollments) Delete(ctx context.Context, ownerID, enrollmentID string) error {
	return m.Called(ctx, ownerID, enrollmentID).Error(0)
}

type mockStudents struct{ mock.Mock }

func (m *mockStudents) Get(ctx context.Context, ownerID, studentID string) (*domain.Student, error) {
	args := m.Called(ctx, ownerID, studentID)
	if st, _ := args.Get(0).(*domain.Student); st != nil {
		return st, args.Error(1)
	}
	return nil, args.Error(1)
}

type mockCourses struct{ mock.Mock }

func (m *mockCourses) Get(ctx context.Context, ownerID, courseID string) (*domain.Course, error) {
	args := m.Called(ctx, ownerID, courseID)
	if c, _ := args.Get(0).(*domain.Course); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func newSvc() (Service, *mockEnrollments, *mockStudents, *mockCourses) {
	e, s, c := &mockEnrollments{}, &mockStudents{}, &mockCourses{}
	return NewService(ServiceDeps{Enrollments: e, Students: s, Courses: c}), e, s, c
}

func TestCreate_InvalidStudent(t *testing.T) {
	svc, enr, st, _ := newSvc()
	st.On("Get", mock.Anything, "owner-1", "nope").Return(nil, domain.ErrNotFound)

	_, err := svc.Create(context.Background(), "owner-1", domain.EnrollmentInput{StudentID: "nope", CourseID: "c1"})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "invalid student_id")
	enr.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreate_InvalidCourse(t *testing.T) {
	svc, _, st, co := newSvc()
	st.On("Get", mock.Anything, "owner-1", "s1").Return(&domain.Student{StudentID: "s1"}, nil)
	co.On("Get", mock.Anything, "owner-1", "nope").Return(nil, domain.ErrNotFound)

	_, err := svc.Create(context.Background(), "owner-1", domain.EnrollmentInput{StudentID: "s1", CourseID: "nope"})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "invalid course_id")
}

func TestCreate_LookupFailureIsNotValidation(t *testing.T) {
	svc, _, st, _ := newSvc()
	st.On("Get", mock.Anything, "owner-1", "s1").Return(nil, errors.New("db down"))

	_, err := svc.Create(context.Background(), "owner-1", domain.EnrollmentInput{StudentID: "s1", CourseID: "c1"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrValidation)
}

func TestCreate_ReturnsJoinedRow(t *testing.T) {
	svc, enr, st, co := newSvc()
	st.On("Get", mock.Anything, "owner-1", "s1").Return(&domain.Student{StudentID: "s1", FirstName: "Ada", LastName: "Lovelace"}, nil)
	co.On("Get", mock.Anything, "owner-1", "c1").Return(&domain.Course{CourseID: "c1", Name: "Maths"}, nil)
	enr.On("Insert", mock.Anything, mock.AnythingOfType("*domain.Enrollment")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Enrollment).EnrollmentDate = date.New(2024, 3, 1)
		}).Return(nil)

	e, err := svc.Create(context.Background(), "owner-1", domain.EnrollmentInput{StudentID: "s1", CourseID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", e.FirstName)
	assert.Equal(t, "Maths", e.CourseName)
	assert.Equal(t, "01-03-2024", e.EnrollmentDate.String())
	assert.NotEmpty(t, e.EnrollmentID)
}

func TestDelete_Missing(t *testing.T) {
	svc, enr, _, _ := newSvc()
	enr.On("Delete", mock.Anything, "owner-1", "e9").Return(domain.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(context.Background(), "owner-1", "e9"), domain.ErrNotFound)
}

package domain

import "github.com/student-records-api/internal/pkg/date"

// Enrollment is returned joined with the student's and course's display names.
type Enrollment struct {
	EnrollmentID   string    `json:"id"`
	OwnerID        string    `json:"-"`
	StudentID      string    `json:"student_id"`
	CourseID       string    `json:"course_id"`
	EnrollmentDate date.Date `json:"enrollment_date"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	CourseName     string    `json:"course_name"`
}

type EnrollmentInput struct {
	StudentID string `json:"student_id" validate:"required"`
	CourseID  string `json:"course_id" validate:"required"`
}

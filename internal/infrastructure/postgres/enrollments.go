package postgres

import (
	"context"

	"github.com/student-records-api/internal/domain"
)

type EnrollmentRepo struct {
	q DBTX
}

func NewEnrollmentRepo(q DBTX) *EnrollmentRepo {
	return &EnrollmentRepo{q: q}
}

const enrollmentJoined = `SELECT e.enrollment_id, e.owner_id, e.student_id, e.course_id, e.enrollment_date,
		s.first_name, s.last_name, c.course_name
	FROM enrollments e
	JOIN students s ON s.student_id = e.student_id
	JOIN courses c ON c.course_id = e.course_id`

func scanEnrollment(s scanner) (domain.Enrollment, error) {
	var e domain.Enrollment
	err := s.Scan(&e.EnrollmentID, &e.OwnerID, &e.StudentID, &e.CourseID, &e.EnrollmentDate,
		&e.FirstName, &e.LastName, &e.CourseName)
	return e, err
}

func (r *EnrollmentRepo) List(ctx context.Context, ownerID string) ([]domain.Enrollment, error) {
	rows, err := r.q.QueryContext(ctx,
		enrollmentJoined+` WHERE e.owner_id = $1 ORDER BY e.enrollment_date, e.enrollment_id`, ownerID)
	if err != nil {
		return nil, mapError("list enrollments", err)
	}
	defer rows.Close()

	out := []domain.Enrollment{}
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, mapError("scan enrollment", err)
		}
		out = append(out, e)
	}
	return out, mapError("list enrollments", rows.Err())
}

func (r *EnrollmentRepo) Get(ctx context.Context, ownerID, enrollmentID string) (*domain.Enrollment, error) {
	e, err := scanEnrollment(r.q.QueryRowContext(ctx,
		enrollmentJoined+` WHERE e.enrollment_id = $1 AND e.owner_id = $2`, enrollmentID, ownerID))
	if err != nil {
		return nil, mapError("get enrollment", err)
	}
	return &e, nil
}

// Insert stores the enrollment and fills EnrollmentDate from the database default.
func (r *EnrollmentRepo) Insert(ctx context.Context, e *domain.Enrollment) error {
	err := r.q.QueryRowContext(ctx,
		`INSERT INTO enrollments (enrollment_id, owner_id, student_id, course_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING enrollment_date`,
		e.EnrollmentID, e.OwnerID, e.StudentID, e.CourseID).Scan(&e.EnrollmentDate)
	return mapError("insert enrollment", err)
}

func (r *EnrollmentRepo) Delete(ctx context.Context, ownerID, enrollmentID string) error {
	return deleteOwned(ctx, r.q, "delete enrollment",
		`DELETE FROM enrollments WHERE enrollment_id = $1 AND owner_id = $2`, enrollmentID, ownerID)
}

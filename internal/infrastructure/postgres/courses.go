package postgres

import (
	"context"

	"github.com/student-records-api/internal/domain"
)

type CourseRepo struct {
	q DBTX
}

func NewCourseRepo(q DBTX) *CourseRepo {
	return &CourseRepo{q: q}
}

const courseColumns = `course_id, owner_id, course_name, course_code, course_description, created_at`

func scanCourse(s scanner) (domain.Course, error) {
	var c domain.Course
	err := s.Scan(&c.CourseID, &c.OwnerID, &c.Name, &c.Code, &c.Description, &c.CreatedAt)
	return c, err
}

func (r *CourseRepo) List(ctx context.Context, ownerID string) ([]domain.Course, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE owner_id = $1 ORDER BY created_at, course_id`, ownerID)
	if err != nil {
		return nil, mapError("list courses", err)
	}
	defer rows.Close()

	out := []domain.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, mapError("scan course", err)
		}
		out = append(out, c)
	}
	return out, mapError("list courses", rows.Err())
}

func (r *CourseRepo) Get(ctx context.Context, ownerID, courseID string) (*domain.Course, error) {
	c, err := scanCourse(r.q.QueryRowContext(ctx,
		`SELECT `+courseColumns+` FROM courses WHERE course_id = $1 AND owner_id = $2`, courseID, ownerID))
	if err != nil {
		return nil, mapError("get course", err)
	}
	return &c, nil
}

func (r *CourseRepo) Insert(ctx context.Context, c *domain.Course) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO courses (`+courseColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.CourseID, c.OwnerID, c.Name, c.Code, c.Description, c.CreatedAt)
	return mapError("insert course", err)
}

func (r *CourseRepo) Delete(ctx context.Context, ownerID, courseID string) error {
	return deleteOwned(ctx, r.q, "delete course",
		`DELETE FROM courses WHERE course_id = $1 AND owner_id = $2`, courseID, ownerID)
}

package postgres

import (
	"context"

	"github.com/student-records-api/internal/domain"
)

type MarkRepo struct {
	q DBTX
}

func NewMarkRepo(q DBTX) *MarkRepo {
	return &MarkRepo{q: q}
}

const markJoined = `SELECT m.mark_id, m.owner_id, m.student_id, m.course_id, m.marks, m.semester,
		s.first_name, s.last_name, c.course_name
	FROM marks m
	JOIN students s ON s.student_id = m.student_id
	JOIN courses c ON c.course_id = m.course_id`

func scanMark(s scanner) (domain.Mark, error) {
	var m domain.Mark
	err := s.Scan(&m.MarkID, &m.OwnerID, &m.StudentID, &m.CourseID, &m.Marks, &m.Semester,
		&m.FirstName, &m.LastName, &m.CourseName)
	return m, err
}

func (r *MarkRepo) List(ctx context.Context, ownerID string) ([]domain.Mark, error) {
	rows, err := r.q.QueryContext(ctx, markJoined+` WHERE m.owner_id = $1 ORDER BY m.semester, m.mark_id`, ownerID)
	if err != nil {
		return nil, mapError("list marks", err)
	}
	defer rows.Close()

	out := []domain.Mark{}
	for rows.Next() {
		m, err := scanMark(rows)
		if err != nil {
			return nil, mapError("scan mark", err)
		}
		out = append(out, m)
	}
	return out, mapError("list marks", rows.Err())
}

func (r *MarkRepo) Get(ctx context.Context, ownerID, markID string) (*domain.Mark, error) {
	m, err := scanMark(r.q.QueryRowContext(ctx, markJoined+` WHERE m.mark_id = $1 AND m.owner_id = $2`, markID, ownerID))
	if err != nil {
		return nil, mapError("get mark", err)
	}
	return &m, nil
}

func (r *MarkRepo) Insert(ctx context.Context, m *domain.Mark) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO marks (mark_id, owner_id, student_id, course_id, marks, semester)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		m.MarkID, m.OwnerID, m.StudentID, m.CourseID, m.Marks, m.Semester)
	return mapError("insert mark", err)
}

func (r *MarkRepo) Update(ctx context.Context, m *domain.Mark) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE marks SET student_id = $3, course_id = $4, marks = $5, semester = $6
		 WHERE mark_id = $1 AND owner_id = $2`,
		m.MarkID, m.OwnerID, m.StudentID, m.CourseID, m.Marks, m.Semester)
	if err != nil {
		return mapError("update mark", err)
	}
	return expectOne("update mark", res)
}

func (r *MarkRepo) Delete(ctx context.Context, ownerID, markID string) error {
	return deleteOwned(ctx, r.q, "delete mark",
		`DELETE FROM marks WHERE mark_id = $1 AND owner_id = $2`, markID, ownerID)
}

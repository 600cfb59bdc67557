package postgres

import (
	"context"

	"github.com/student-records-api/internal/domain"
)

// StudentRepo is scoped by owner on every statement; another owner's row reads as missing.
type StudentRepo struct {
	q DBTX
}

func NewStudentRepo(q DBTX) *StudentRepo {
	return &StudentRepo{q: q}
}

const studentColumns = `student_id, owner_id, first_name, last_name, dob, gender, email, phone, address, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanStudent(s scanner) (domain.Student, error) {
	var st domain.Student
	err := s.Scan(&st.StudentID, &st.OwnerID, &st.FirstName, &st.LastName, &st.DOB,
		&st.Gender, &st.Email, &st.Phone, &st.Address, &st.CreatedAt, &st.UpdatedAt)
	return st, err
}

func (r *StudentRepo) List(ctx context.Context, ownerID string) ([]domain.Student, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+studentColumns+` FROM students WHERE owner_id = $1 ORDER BY created_at, student_id`, ownerID)
	if err != nil {
		return nil, mapError("list students", err)
	}
	defer rows.Close()

	out := []domain.Student{}
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			return nil, mapError("scan student", err)
		}
		out = append(out, st)
	}
	return out, mapError("list students", rows.Err())
}

func (r *StudentRepo) Get(ctx context.Context, ownerID, studentID string) (*domain.Student, error) {
	st, err := scanStudent(r.q.QueryRowContext(ctx,
		`SELECT `+studentColumns+` FROM students WHERE student_id = $1 AND owner_id = $2`, studentID, ownerID))
	if err != nil {
		return nil, mapError("get student", err)
	}
	return &st, nil
}

func (r *StudentRepo) Insert(ctx context.Context, st *domain.Student) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO students (`+studentColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		st.StudentID, st.OwnerID, st.FirstName, st.LastName, st.DOB,
		st.Gender, st.Email, st.Phone, st.Address, st.CreatedAt, st.UpdatedAt)
	return mapError("insert student", err)
}

func (r *StudentRepo) Update(ctx context.Context, st *domain.Student) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE students SET first_name = $3, last_name = $4, dob = $5, gender = $6,
			email = $7, phone = $8, address = $9, updated_at = $10
		 WHERE student_id = $1 AND owner_id = $2`,
		st.StudentID, st.OwnerID, st.FirstName, st.LastName, st.DOB,
		st.Gender, st.Email, st.Phone, st.Address, st.UpdatedAt)
	if err != nil {
		return mapError("update student", err)
	}
	return expectOne("update student", res)
}

func (r *StudentRepo) Delete(ctx context.Context, ownerID, studentID string) error {
	return deleteOwned(ctx, r.q, "delete student",
		`DELETE FROM students WHERE student_id = $1 AND owner_id = $2`, studentID, ownerID)
}

func deleteOwned(ctx context.Context, q DBTX, op, query, id, ownerID string) error {
	res, err := q.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return mapError(op, err)
	}
	return expectOne(op, res)
}

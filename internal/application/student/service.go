package student

import (
	"context"
	"fmt"
	"strings"

	"github.com/student-records-api/internal/domain"
	"github.com/student-records-api/internal/pkg/clock"
	"github.com/student-records-api/internal/pkg/id"
)

type Service interface {
	List(ctx context.Context, ownerID string) ([]domain.Student, error)
	Get(ctx context.Context, ownerID, studentID string) (*domain.Student, error)
	Create(ctx context.Context, ownerID string, in domain.StudentInput) (*domain.Student, error)
	Update(ctx context.Context, ownerID, studentID string, in domain.StudentInput) (*domain.Student, error)
	Delete(ctx context.Context, ownerID, studentID string) error
}

type studentStore interface {
	List(ctx context.Context, ownerID string) ([]domain.Student, error)
	Get(ctx context.Context, ownerID, studentID string) (*domain.Student, error)
	Insert(ctx context.Context, st *domain.Student) error
	Update(ctx context.Context, st *domain.Student) error
	Delete(ctx context.Context, ownerID, studentID string) error
}

type service struct {
	store studentStore
	clock clock.Clock
}

func NewService(store studentStore, c clock.Clock) Service {
	if c == nil {
		c = clock.System{}
	}
	return &service{store: store, clock: c}
}

func (s *service) List(ctx context.Context, ownerID string) ([]domain.Student, error) {
	return s.store.List(ctx, ownerID)
}

func (s *service) Get(ctx context.Context, ownerID, studentID string) (*domain.Student, error) {
	st, err := s.store.Get(ctx, ownerID, studentID)
	if err != nil {
		return nil, fmt.Errorf("student %s: %w", studentID, err)
	}
	return st, nil
}

func (s *service) Create(ctx context.Context, ownerID string, in domain.StudentInput) (*domain.Student, error) {
	now := s.clock.Now()
	st := &domain.Student{
		StudentID: id.New(),
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	apply(st, in)
	if err := s.store.Insert(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *service) Update(ctx context.Context, ownerID, studentID string, in domain.StudentInput) (*domain.Student, error) {
	st, err := s.Get(ctx, ownerID, studentID)
	if err != nil {
		return nil, err
	}
	apply(st, in)
	st.UpdatedAt = s.clock.Now()
	if err := s.store.Update(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *service) Delete(ctx context.Context, ownerID, studentID string) error {
	return s.store.Delete(ctx, ownerID, studentID)
}

func apply(st *domain.Student, in domain.StudentInput) {
	st.FirstName = strings.TrimSpace(in.FirstName)
	st.LastName = strings.TrimSpace(in.LastName)
	st.DOB = in.DOB
	st.Gender = in.Gender
	st.Email = domain.NormalizeEmail(in.Email)
	st.Phone = in.Phone
	st.Address = in.Address
}

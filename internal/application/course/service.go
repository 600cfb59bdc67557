package course

import (
	"context"
	"strings"

	"github.com/student-records-api/internal/domain"
	"github.com/student-records-api/internal/pkg/clock"
	"github.com/student-records-api/internal/pkg/id"
)

type Service interface {
	List(ctx context.Context, ownerID string) ([]domain.Course, error)
	Create(ctx context.Context, ownerID string, in domain.CourseInput) (*domain.Course, error)
	Delete(ctx context.Context, ownerID, courseID string) error
}

type courseStore interface {
	List(ctx context.Context, ownerID string) ([]domain.Course, error)
	Insert(ctx context.Context, c *domain.Course) error
	Delete(ctx context.Context, ownerID, courseID string) error
}

type service struct {
	store courseStore
	clock clock.Clock
}

func NewService(store courseStore, c clock.Clock) Service {
	if c == nil {
		c = clock.System{}
	}
	return &service{store: store, clock: c}
}

func (s *service) List(ctx context.Context, ownerID string) ([]domain.Course, error) {
	return s.store.List(ctx, ownerID)
}

func (s *service) Create(ctx context.Context, ownerID string, in domain.CourseInput) (*domain.Course, error) {
	c := &domain.Course{
		CourseID:    id.New(),
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(in.Name),
		Code:        strings.ToUpper(strings.TrimSpace(in.Code)),
		Description: in.Description,
		CreatedAt:   s.clock.Now(),
	}
	if err := s.store.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete also drops the course's enrollments and marks through the schema's cascade.
func (s *service) Delete(ctx context.Context, ownerID, courseID string) error {
	return s.store.Delete(ctx, ownerID, courseID)
}

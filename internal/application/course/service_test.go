package course

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/student-records-api/internal/domain"
	"github.com/student-records-api/internal/testutil"
)

type mockStore struct{ mock.Mock }

func (m *mockStore) List(ctx context.Context, ownerID string) ([]domain.Course, error) {
	args := m.Called(ctx, ownerID)
	out, _ := args.Get(0).([]domain.Course)
	return out, args.Error(1)
}
func (m *mockStore) Insert(ctx context.Context, c *domain.Course) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockStore) Delete(ctx context.Context, ownerID, courseID string) error {
	return m.Called(ctx, ownerID, courseID).Error(0)
}

func TestCreate_NormalizesCode(t *testing.T) {
	store := &mockStore{}
	store.On("Insert", mock.Anything, mock.AnythingOfType("*domain.Course")).Return(nil)
	now := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	svc := NewService(store, testutil.NewManualClock(now))

	c, err := svc.Create(context.Background(), "owner-1", domain.CourseInput{Name: " Maths ", Code: "ma101"})
	require.NoError(t, err)
	assert.Equal(t, "Maths", c.Name)
	assert.Equal(t, "MA101", c.Code)
	assert.Equal(t, "owner-1", c.OwnerID)
	assert.Equal(t, now, c.CreatedAt)
}

func TestCreate_StoreError(t *testing.T) {
	store := &mockStore{}
	store.On("Insert", mock.Anything, mock.Anything).Return(domain.ErrConflict)
	svc := NewService(store, nil)

	_, err := svc.Create(context.Background(), "owner-1", domain.CourseInput{Name: "Maths", Code: "M1"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestDelete_Missing(t *testing.T) {
	store := &mockStore{}
	store.On("Delete", mock.Anything, "owner-1", "c9").Return(domain.ErrNotFound)
	svc := NewService(store, nil)

	assert.ErrorIs(t, svc.Delete(context.Background(), "owner-1", "c9"), domain.ErrNotFound)
}

func TestList_ScopedToOwner(t *testing.T) {
	store := &mockStore{}
	store.On("List", mock.Anything, "owner-1").Return([]domain.Course{{CourseID: "c1", OwnerID: "owner-1"}}, nil)
	svc := NewService(store, nil)

	got, err := svc.List(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

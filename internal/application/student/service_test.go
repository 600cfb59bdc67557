package student

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/student-records-api/internal/domain"
	"github.com/student-records-api/internal/pkg/date"
	"github.com/student-records-api/internal/testutil"
)

type mockStore struct{ mock.Mock }

func (m *mockStore) List(ctx context.Context, ownerID string) ([]domain.Student, error) {
	args := m.Called(ctx, ownerID)
	out, _ := args.Get(0).([]domain.Student)
	return out, args.Error(1)
}
func (m *mockStore) Get(ctx context.Context, ownerID, studentID string) (*domain.Student, error) {
	args := m.Called(ctx, ownerID, studentID)
	if st, _ := args.Get(0).(*domain.Student); st != nil {
		return st, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockStore) Insert(ctx context.Context, st *domain.Student) error {
	return m.Called(ctx, st).Error(0)
}
func (m *mockStore) Update(ctx context.Context, st *domain.Student) error {
	return m.Called(ctx, st).Error(0)
}
func (m *mockStore) Delete(ctx context.Context, ownerID, studentID string) error {
	return m.Called(ctx, ownerID, studentID).Error(0)
}

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestCreate_StampsOwnerAndID(t *testing.T) {
	store := &mockStore{}
	store.On("Insert", mock.Anything, mock.MatchedBy(func(st *domain.Student) bool {
		return st.OwnerID == "owner-1" && st.StudentID != "" && st.Email == "ada@x.com"
	})).Return(nil)
	svc := NewService(store, testutil.NewManualClock(t0))

	st, err := svc.Create(context.Background(), "owner-1", domain.StudentInput{
		FirstName: " Ada ", LastName: "Lovelace", DOB: date.New(2001, time.May, 9), Email: "ADA@x.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", st.FirstName)
	assert.Equal(t, t0, st.CreatedAt)
	assert.Equal(t, "09-05-2001", st.DOB.String())
	store.AssertExpectations(t)
}

func TestGet_OtherOwnerNotFound(t *testing.T) {
	store := &mockStore{}
	store.On("Get", mock.Anything, "intruder", "s1").Return(nil, domain.ErrNotFound)
	svc := NewService(store, nil)

	_, err := svc.Get(context.Background(), "intruder", "s1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_ReplacesFieldsKeepsCreated(t *testing.T) {
	store := &mockStore{}
	existing := &domain.Student{StudentID: "s1", OwnerID: "owner-1", FirstName: "Ada", LastName: "L", CreatedAt: t0, UpdatedAt: t0}
	store.On("Get", mock.Anything, "owner-1", "s1").Return(existing, nil)
	store.On("Update", mock.Anything, mock.AnythingOfType("*domain.Student")).Return(nil)
	svc := NewService(store, testutil.NewManualClock(t0.Add(time.Hour)))

	st, err := svc.Update(context.Background(), "owner-1", "s1", domain.StudentInput{FirstName: "Augusta", LastName: "King"})
	require.NoError(t, err)
	assert.Equal(t, "Augusta", st.FirstName)
	assert.Equal(t, t0, st.CreatedAt)
	assert.Equal(t, t0.Add(time.Hour), st.UpdatedAt)
	assert.True(t, st.DOB.IsZero())
}

func TestUpdate_MissingSkipsWrite(t *testing.T) {
	store := &mockStore{}
	store.On("Get", mock.Anything, "owner-1", "s9").Return(nil, domain.ErrNotFound)
	svc := NewService(store, nil)

	_, err := svc.Update(context.Background(), "owner-1", "s9", domain.StudentInput{FirstName: "A", LastName: "B"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	store.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDelete_Delegates(t *testing.T) {
	store := &mockStore{}
	store.On("Delete", mock.Anything, "owner-1", "s1").Return(nil)
	svc := NewService(store, nil)

	assert.NoError(t, svc.Delete(context.Background(), "owner-1", "s1"))
	store.AssertExpectations(t)
}

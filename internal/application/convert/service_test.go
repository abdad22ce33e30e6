package convert

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quorumflow-api/internal/domain"
)

type mockConvertStore struct{ mock.Mock }

func (m *mockConvertStore) Put(ctx context.Context, c *domain.Convert) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockConvertStore) Get(ctx context.Context, convertID string) (*domain.Convert, error) {
	args := m.Called(ctx, convertID)
	if c, _ := args.Get(0).(*domain.Convert); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockConvertStore) List(ctx context.Context) ([]domain.Convert, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Convert), args.Error(1)
}
func (m *mockConvertStore) Update(ctx context.Context, convertID string, updates map[string]interface{}) error {
	return m.Called(ctx, convertID, updates).Error(0)
}
func (m *mockConvertStore) Delete(ctx context.Context, convertID string) error {
	return m.Called(ctx, convertID).Error(0)
}

type mockFutureMemberStore struct{ mock.Mock }

func (m *mockFutureMemberStore) Put(ctx context.Context, fm *domain.FutureMember) error {
	return m.Called(ctx, fm).Error(0)
}
func (m *mockFutureMemberStore) Get(ctx context.Context, futureMemberID string) (*domain.FutureMember, error) {
	args := m.Called(ctx, futureMemberID)
	if fm, _ := args.Get(0).(*domain.FutureMember); fm != nil {
		return fm, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockFutureMemberStore) List(ctx context.Context) ([]domain.FutureMember, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.FutureMember), args.Error(1)
}
func (m *mockFutureMemberStore) Update(ctx context.Context, futureMemberID string, updates map[string]interface{}) error {
	return m.Called(ctx, futureMemberID, updates).Error(0)
}
func (m *mockFutureMemberStore) Delete(ctx context.Context, futureMemberID string) error {
	return m.Called(ctx, futureMemberID).Error(0)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestService(cs *mockConvertStore, fs *mockFutureMemberStore, now time.Time) *service {
	return &service{converts: cs, futureMembers: fs, now: func() time.Time { return now }}
}

func TestListBaptisms_MergesAndTagsSources(t *testing.T) {
	cs := &mockConvertStore{}
	fs := &mockFutureMemberStore{}
	cs.On("List", mock.Anything).Return([]domain.Convert{
		{ConvertID: "c1", FullName: "Ana", BaptismDate: day(2024, time.February, 4)},
	}, nil)
	fs.On("List", mock.Anything).Return([]domain.FutureMember{
		{FutureMemberID: "f1", FullName: "Luis", BaptismDate: day(2024, time.May, 18)},
	}, nil)

	svc := newTestService(cs, fs, day(2024, time.June, 1))
	baptisms, err := svc.ListBaptisms(context.Background(), 0)

	require.NoError(t, err)
	require.Len(t, baptisms, 2)
	assert.Equal(t, "Luis", baptisms[0].Name)
	assert.Equal(t, domain.BaptismSourceAutomatic, baptisms[0].Source)
	assert.Equal(t, "Ana", baptisms[1].Name)
	assert.Equal(t, domain.BaptismSourceManual, baptisms[1].Source)
}

func TestListBaptisms_SkipsUnreachedScheduledDates(t *testing.T) {
	cs := &mockConvertStore{}
	fs := &mockFutureMemberStore{}
	cs.On("List", mock.Anything).Return([]domain.Convert{}, nil)
	fs.On("List", mock.Anything).Return([]domain.FutureMember{
		{FutureMemberID: "f1", FullName: "Pending", BaptismDate: day(2024, time.December, 25)},
	}, nil)

	svc := newTestService(cs, fs, day(2024, time.June, 1))
	baptisms, err := svc.ListBaptisms(context.Background(), 0)

	require.NoError(t, err)
	assert.Empty(t, baptisms)
}

func TestListBaptisms_FiltersByYear(t *testing.T) {
	cs := &mockConvertStore{}
	fs := &mockFutureMemberStore{}
	cs.On("List", mock.Anything).Return([]domain.Convert{
		{ConvertID: "c1", FullName: "This Year", BaptismDate: day(2024, time.March, 3)},
		{ConvertID: "c2", FullName: "Last Year", BaptismDate: day(2023, time.March, 3)},
	}, nil)
	fs.On("List", mock.Anything).Return([]domain.FutureMember{}, nil)

	svc := newTestService(cs, fs, day(2024, time.June, 1))
	baptisms, err := svc.ListBaptisms(context.Background(), 2024)

	require.NoError(t, err)
	require.Len(t, baptisms, 1)
	assert.Equal(t, "This Year", baptisms[0].Name)
}

func TestCreate_InvalidDate(t *testing.T) {
	svc := NewService(ServiceDeps{ConvertRepo: &mockConvertStore{}, FutureMemberRepo: &mockFutureMemberStore{}})
	_, err := svc.Create(context.Background(), domain.CreateConvertRequest{
		FullName:    "Ana",
		BaptismDate: "04/02/2024",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestUpdate_NoFieldsReturnsCurrent(t *testing.T) {
	cs := &mockConvertStore{}
	cs.On("Get", mock.Anything, "c1").Return(&domain.Convert{ConvertID: "c1"}, nil)

	svc := NewService(ServiceDeps{ConvertRepo: cs, FutureMemberRepo: &mockFutureMemberStore{}})
	c, err := svc.Update(context.Background(), "c1", domain.UpdateConvertRequest{})

	require.NoError(t, err)
	assert.Equal(t, "c1", c.ConvertID)
	cs.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

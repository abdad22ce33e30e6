package ministering

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quorumflow-api/internal/domain"
)

type mockCompanionshipStore struct{ mock.Mock }

func (m *mockCompanionshipStore) Put(ctx context.Context, c *domain.Companionship) error {
	return m.Called(ctx, c).Error(0)
}
func (m *mockCompanionshipStore) Get(ctx context.Context, companionshipID string) (*domain.Companionship, error) {
	args := m.Called(ctx, companionshipID)
	if c, _ := args.Get(0).(*domain.Companionship); c != nil {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockCompanionshipStore) List(ctx context.Context) ([]domain.Companionship, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Companionship), args.Error(1)
}
func (m *mockCompanionshipStore) Update(ctx context.Context, companionshipID string, updates map[string]interface{}) error {
	return m.Called(ctx, companionshipID, updates).Error(0)
}
func (m *mockCompanionshipStore) Delete(ctx context.Context, companionshipID string) error {
	return m.Called(ctx, companionshipID).Error(0)
}

func TestListUrgent_FlattensFlaggedFamilies(t *testing.T) {
	repo := &mockCompanionshipStore{}
	repo.On("List", mock.Anything).Return([]domain.Companionship{
		{
			CompanionshipID: "comp1",
			Companions:      []string{"Elder A", "Elder B"},
			Families: []domain.MinisteredFamily{
				{Name: "García", UrgentNeed: true},
				{Name: "Rojas", UrgentNeed: false},
			},
		},
		{
			CompanionshipID: "comp2",
			Companions:      []string{"Elder C"},
			Families: []domain.MinisteredFamily{
				{Name: "Mendoza", UrgentNeed: true},
			},
		},
	}, nil)

	svc := NewService(ServiceDeps{CompanionshipRepo: repo})
	urgent, err := svc.ListUrgent(context.Background())

	require.NoError(t, err)
	require.Len(t, urgent, 2)
	assert.Equal(t, "García", urgent[0].Family.Name)
	assert.Equal(t, "comp1", urgent[0].CompanionshipID)
	assert.Equal(t, []string{"Elder A", "Elder B"}, urgent[0].Companions)
	assert.Equal(t, "Mendoza", urgent[1].Family.Name)
}

func TestListUrgent_NoneFlagged(t *testing.T) {
	repo := &mockCompanionshipStore{}
	repo.On("List", mock.Anything).Return([]domain.Companionship{
		{CompanionshipID: "comp1", Families: []domain.MinisteredFamily{{Name: "García"}}},
	}, nil)

	svc := NewService(ServiceDeps{CompanionshipRepo: repo})
	urgent, err := svc.ListUrgent(context.Background())

	require.NoError(t, err)
	assert.Empty(t, urgent)
}

func TestCreate_MapsFamilyInputs(t *testing.T) {
	repo := &mockCompanionshipStore{}
	repo.On("Put", mock.Anything, mock.MatchedBy(func(c *domain.Companionship) bool {
		return len(c.Families) == 1 && c.Families[0].Name == "García" && c.Families[0].UrgentNeed
	})).Return(nil)

	svc := NewService(ServiceDeps{CompanionshipRepo: repo})
	c, err := svc.Create(context.Background(), domain.CreateCompanionshipRequest{
		Companions: []string{"Elder A"},
		Families:   []domain.FamilyInput{{Name: "García", UrgentNeed: true}},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, c.CompanionshipID)
	repo.AssertExpectations(t)
}

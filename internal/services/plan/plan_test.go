package plan

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nerdshive/membership-portal/internal/models"
)

type PlanRepoMock struct{ mock.Mock }

func (m *PlanRepoMock) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Plan), args.Error(1)
}

func (m *PlanRepoMock) GetPlan(ctx context.Context, id int) (*models.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

// CacheFake — кэш планов в памяти.
type CacheFake struct {
	values map[string][]*models.Plan
}

func newCacheFake() *CacheFake {
	return &CacheFake{values: map[string][]*models.Plan{}}
}

func (f *CacheFake) Get(_ context.Context, key string, result any) (bool, error) {
	v, ok := f.values[key]
	if !ok {
		return false, nil
	}
	*result.(*[]*models.Plan) = v
	return true, nil
}

func (f *CacheFake) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.values[key] = value.([]*models.Plan)
	return nil
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_List_CacheMissThenHit(t *testing.T) {
	repo := new(PlanRepoMock)
	cache := newCacheFake()
	svc := NewService(repo, cache, newNoopLogger())

	plans := []*models.Plan{
		{ID: 1, Name: "Daily Pass", Price: 299, Period: "day"},
		{ID: 2, Name: "Weekly Pass", Price: 1400, Period: "week"},
		{ID: 3, Name: "Monthly Pass", Price: 4600, Period: "month", IsPopular: true},
	}
	repo.On("ListPlans", mock.Anything).Return(plans, nil).Once()

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, plans, first)

	second, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, plans, second)
	repo.AssertNumberOfCalls(t, "ListPlans", 1)
}

func TestService_Get(t *testing.T) {
	repo := new(PlanRepoMock)
	svc := NewService(repo, newCacheFake(), newNoopLogger())

	repo.On("GetPlan", mock.Anything, 3).Return(&models.Plan{ID: 3, Name: "Monthly Pass"}, nil).Once()

	p, err := svc.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Monthly Pass", p.Name)
}

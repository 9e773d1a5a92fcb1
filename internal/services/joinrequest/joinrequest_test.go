package joinrequest

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

type JoinRequestRepoMock struct{ mock.Mock }

func (m *JoinRequestRepoMock) CreateJoinRequest(ctx context.Context, req models.JoinRequest) (int, error) {
	args := m.Called(ctx, req)
	return args.Int(0), args.Error(1)
}

func (m *JoinRequestRepoMock) ListJoinRequestsByStatus(ctx context.Context, status models.RequestStatus) ([]*models.JoinRequest, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.JoinRequest), args.Error(1)
}

func (m *JoinRequestRepoMock) UpdateJoinRequestStatus(ctx context.Context, id int, status models.RequestStatus, processorUID string, at time.Time) (int, error) {
	args := m.Called(ctx, id, status, processorUID, at)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_Create(t *testing.T) {
	repo := new(JoinRequestRepoMock)
	svc := NewService(repo, newNoopLogger())

	repo.On("CreateJoinRequest", mock.Anything, mock.MatchedBy(func(r models.JoinRequest) bool {
		return r.Status == models.RequestStatusPending && r.Email == "ravi@example.com"
	})).Return(5, nil).Once()

	id, err := svc.Create(context.Background(), models.DummyJoinRequest{
		FullName:   "Ravi Kumar",
		Email:      "ravi@example.com",
		Phone:      "9876543210",
		Profession: "Engineer",
		Reason:     "Need a quiet workspace",
	})

	require.NoError(t, err)
	assert.Equal(t, 5, id)
	repo.AssertExpectations(t)
}

func TestService_Process(t *testing.T) {
	repo := new(JoinRequestRepoMock)
	svc := NewService(repo, newNoopLogger())

	repo.On("UpdateJoinRequestStatus", mock.Anything, 5, models.RequestStatusApproved,
		"uid-admin", mock.Anything).Return(1, nil).Once()

	err := svc.Process(context.Background(), 5, models.RequestStatusApproved, "uid-admin")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Process_AlreadyProcessed(t *testing.T) {
	repo := new(JoinRequestRepoMock)
	svc := NewService(repo, newNoopLogger())

	repo.On("UpdateJoinRequestStatus", mock.Anything, 5, models.RequestStatusRejected,
		"uid-admin", mock.Anything).Return(0, nil).Once()

	err := svc.Process(context.Background(), 5, models.RequestStatusRejected, "uid-admin")
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestService_Process_NonTerminalStatus(t *testing.T) {
	repo := new(JoinRequestRepoMock)
	svc := NewService(repo, newNoopLogger())

	err := svc.Process(context.Background(), 5, models.RequestStatusPending, "uid-admin")
	assert.Error(t, err)
	repo.AssertNotCalled(t, "UpdateJoinRequestStatus")
}

func TestService_ListPending(t *testing.T) {
	repo := new(JoinRequestRepoMock)
	svc := NewService(repo, newNoopLogger())

	expected := []*models.JoinRequest{{ID: 5, Status: models.RequestStatusPending}}
	repo.On("ListJoinRequestsByStatus", mock.Anything, models.RequestStatusPending).
		Return(expected, nil).Once()

	result, err := svc.ListPending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

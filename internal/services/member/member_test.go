package member

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

type MemberRepoMock struct{ mock.Mock }

func (m *MemberRepoMock) ListUsersByStatus(ctx context.Context, role models.Role, status models.UserStatus) ([]*models.User, error) {
	args := m.Called(ctx, role, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MemberRepoMock) UpdateUserStatus(ctx context.Context, userUID string, status models.UserStatus, at time.Time) (int, error) {
	args := m.Called(ctx, userUID, status, at)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_ListByStatus(t *testing.T) {
	repo := new(MemberRepoMock)
	svc := NewService(repo, newNoopLogger())

	expected := []*models.User{{UID: "uid-1", Status: models.UserStatusPending}}
	repo.On("ListUsersByStatus", mock.Anything, models.RoleUser, models.UserStatusPending).
		Return(expected, nil).Once()

	result, err := svc.ListByStatus(context.Background(), models.UserStatusPending)
	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

func TestService_ListByStatus_UnknownStatus(t *testing.T) {
	repo := new(MemberRepoMock)
	svc := NewService(repo, newNoopLogger())

	_, err := svc.ListByStatus(context.Background(), models.UserStatus("archived"))
	assert.Error(t, err)
	repo.AssertNotCalled(t, "ListUsersByStatus")
}

func TestService_Process(t *testing.T) {
	repo := new(MemberRepoMock)
	svc := NewService(repo, newNoopLogger())

	repo.On("UpdateUserStatus", mock.Anything, "uid-1", models.UserStatusApproved,
		mock.Anything).Return(1, nil).Once()

	err := svc.Process(context.Background(), "uid-1", models.UserStatusApproved)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Process_AlreadyProcessed(t *testing.T) {
	repo := new(MemberRepoMock)
	svc := NewService(repo, newNoopLogger())

	repo.On("UpdateUserStatus", mock.Anything, "uid-1", models.UserStatusRejected,
		mock.Anything).Return(0, nil).Once()

	err := svc.Process(context.Background(), "uid-1", models.UserStatusRejected)
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestService_Process_PendingIsNotTerminal(t *testing.T) {
	repo := new(MemberRepoMock)
	svc := NewService(repo, newNoopLogger())

	err := svc.Process(context.Background(), "uid-1", models.UserStatusPending)
	assert.Error(t, err)
	repo.AssertNotCalled(t, "UpdateUserStatus")
}

package query

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

type QueryRepoMock struct{ mock.Mock }

func (m *QueryRepoMock) CreateQuery(ctx context.Context, query models.Query) (int, error) {
	args := m.Called(ctx, query)
	return args.Int(0), args.Error(1)
}

func (m *QueryRepoMock) ListQueriesByUser(ctx context.Context, userUID string) ([]*models.Query, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Query), args.Error(1)
}

func (m *QueryRepoMock) ListAllQueries(ctx context.Context) ([]*models.Query, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Query), args.Error(1)
}

func (m *QueryRepoMock) AnswerQuery(ctx context.Context, id int, response, responderUID string, at time.Time) (int, error) {
	args := m.Called(ctx, id, response, responderUID, at)
	return args.Int(0), args.Error(1)
}

type UserGetterMock struct{ mock.Mock }

func (m *UserGetterMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_Create_StampsAuthorName(t *testing.T) {
	repo := new(QueryRepoMock)
	users := new(UserGetterMock)
	svc := NewService(repo, users, newNoopLogger())

	users.On("GetUser", mock.Anything, "uid-1").Return(&models.User{
		UID:      "uid-1",
		FullName: "Asha Verma",
	}, nil).Once()
	repo.On("CreateQuery", mock.Anything, mock.MatchedBy(func(q models.Query) bool {
		return q.Status == models.QueryStatusPending &&
			q.UserName == "Asha Verma" &&
			q.Question == "Is the meeting room bookable on weekends?"
	})).Return(9, nil).Once()

	id, err := svc.Create(context.Background(), "uid-1", "Is the meeting room bookable on weekends?")

	require.NoError(t, err)
	assert.Equal(t, 9, id)
	repo.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestService_Respond(t *testing.T) {
	repo := new(QueryRepoMock)
	users := new(UserGetterMock)
	svc := NewService(repo, users, newNoopLogger())

	repo.On("AnswerQuery", mock.Anything, 9, "Yes, via the front desk.",
		"uid-admin", mock.Anything).Return(1, nil).Once()

	err := svc.Respond(context.Background(), 9, "Yes, via the front desk.", "uid-admin")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Respond_AlreadyAnswered(t *testing.T) {
	repo := new(QueryRepoMock)
	users := new(UserGetterMock)
	svc := NewService(repo, users, newNoopLogger())

	repo.On("AnswerQuery", mock.Anything, 9, "Second answer",
		"uid-admin-2", mock.Anything).Return(0, nil).Once()

	err := svc.Respond(context.Background(), 9, "Second answer", "uid-admin-2")
	assert.ErrorIs(t, err, ErrAlreadyAnswered)
}

func TestService_ListByUser(t *testing.T) {
	repo := new(QueryRepoMock)
	users := new(UserGetterMock)
	svc := NewService(repo, users, newNoopLogger())

	expected := []*models.Query{{ID: 9, UserUID: "uid-1"}}
	repo.On("ListQueriesByUser", mock.Anything, "uid-1").Return(expected, nil).Once()

	result, err := svc.ListByUser(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

package payment

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nerdshive/membership-portal/internal/models"
)

type PaymentRepoMock struct{ mock.Mock }

func (m *PaymentRepoMock) CreatePayment(ctx context.Context, payment models.Payment) (int, error) {
	args := m.Called(ctx, payment)
	return args.Int(0), args.Error(1)
}

func (m *PaymentRepoMock) ListPaymentsByStatus(ctx context.Context, status models.PaymentStatus) ([]*models.Payment, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *PaymentRepoMock) ListPaymentsByUser(ctx context.Context, userUID string) ([]*models.Payment, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *PaymentRepoMock) UpdatePaymentStatus(ctx context.Context, id int, status models.PaymentStatus, verifierUID string, at time.Time) (int, error) {
	args := m.Called(ctx, id, status, verifierUID, at)
	return args.Int(0), args.Error(1)
}

type PlanGetterMock struct{ mock.Mock }

func (m *PlanGetterMock) GetPlan(ctx context.Context, id int) (*models.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_Create(t *testing.T) {
	repo := new(PaymentRepoMock)
	plans := new(PlanGetterMock)
	svc := NewService(repo, plans, newNoopLogger())

	plans.On("GetPlan", mock.Anything, 3).Return(&models.Plan{ID: 3, Price: 4600}, nil).Once()
	repo.On("CreatePayment", mock.Anything, mock.MatchedBy(func(p models.Payment) bool {
		return p.Status == models.PaymentStatusPending &&
			p.UserUID == "uid-1" && p.PlanID == 3 && p.Amount == 4600
	})).Return(17, nil).Once()

	id, err := svc.Create(context.Background(), "uid-1", models.DummyPayment{
		PlanID:        3,
		Amount:        4600,
		TransactionID: "UPI-20260828-001",
	})

	require.NoError(t, err)
	assert.Equal(t, 17, id)
	repo.AssertExpectations(t)
	plans.AssertExpectations(t)
}

func TestService_Create_UnknownPlan(t *testing.T) {
	repo := new(PaymentRepoMock)
	plans := new(PlanGetterMock)
	svc := NewService(repo, plans, newNoopLogger())

	plans.On("GetPlan", mock.Anything, 99).Return(nil, sql.ErrNoRows).Once()

	_, err := svc.Create(context.Background(), "uid-1", models.DummyPayment{
		PlanID:        99,
		Amount:        100,
		TransactionID: "UPI-20260828-002",
	})

	assert.ErrorIs(t, err, ErrPlanNotFound)
	repo.AssertNotCalled(t, "CreatePayment")
}

func TestService_Review(t *testing.T) {
	repo := new(PaymentRepoMock)
	plans := new(PlanGetterMock)
	svc := NewService(repo, plans, newNoopLogger())

	repo.On("UpdatePaymentStatus", mock.Anything, 17, models.PaymentStatusVerified,
		"uid-admin", mock.Anything).Return(1, nil).Once()

	err := svc.Review(context.Background(), 17, models.PaymentStatusVerified, "uid-admin")
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Review_AlreadyProcessed(t *testing.T) {
	repo := new(PaymentRepoMock)
	plans := new(PlanGetterMock)
	svc := NewService(repo, plans, newNoopLogger())

	// Ноль затронутых строк: решение уже принято, второй администратор
	// получает отказ, а не перезаписывает статус.
	repo.On("UpdatePaymentStatus", mock.Anything, 17, models.PaymentStatusRejected,
		"uid-admin-2", mock.Anything).Return(0, nil).Once()

	err := svc.Review(context.Background(), 17, models.PaymentStatusRejected, "uid-admin-2")
	assert.ErrorIs(t, err, ErrAlreadyProcessed)
}

func TestService_Review_NonTerminalStatus(t *testing.T) {
	repo := new(PaymentRepoMock)
	plans := new(PlanGetterMock)
	svc := NewService(repo, plans, newNoopLogger())

	err := svc.Review(context.Background(), 17, models.PaymentStatusPending, "uid-admin")
	assert.Error(t, err)
	repo.AssertNotCalled(t, "UpdatePaymentStatus")
}

func TestService_Review_RepoError(t *testing.T) {
	repo := new(PaymentRepoMock)
	plans := new(PlanGetterMock)
	svc := NewService(repo, plans, newNoopLogger())

	repo.On("UpdatePaymentStatus", mock.Anything, 17, models.PaymentStatusVerified,
		"uid-admin", mock.Anything).Return(0, errors.New("connection reset")).Once()

	err := svc.Review(context.Background(), 17, models.PaymentStatusVerified, "uid-admin")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAlreadyProcessed)
}

func TestService_ListByUser(t *testing.T) {
	repo := new(PaymentRepoMock)
	plans := new(PlanGetterMock)
	svc := NewService(repo, plans, newNoopLogger())

	expected := []*models.Payment{{ID: 1, UserUID: "uid-1"}}
	repo.On("ListPaymentsByUser", mock.Anything, "uid-1").Return(expected, nil).Once()

	result, err := svc.ListByUser(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, expected, result)
}

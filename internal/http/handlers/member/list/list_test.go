package list

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/nerdshive/membership-portal/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) ListByStatus(ctx context.Context, status models.UserStatus) ([]*models.User, error) {
	args := m.Called(ctx, status)
	members, _ := args.Get(0).([]*models.User)
	return members, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestHandler_ServeHTTP_EmptyList(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("ListByStatus", mock.Anything, models.UserStatusApproved).
		Return(nil, nil).Once()
	handler := New(newNoopLogger(), svc)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/admin/members?status=approved", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

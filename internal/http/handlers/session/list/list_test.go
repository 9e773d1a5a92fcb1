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

	"github.com/nerdshive/membership-portal/internal/http/middlewarectx"
	"github.com/nerdshive/membership-portal/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) ListByUser(ctx context.Context, userUID string) ([]*models.MemberSession, error) {
	args := m.Called(ctx, userUID)
	sessions, _ := args.Get(0).([]*models.MemberSession)
	return sessions, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestHandler_ServeHTTP_EmptyList(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("ListByUser", mock.Anything, "uid-1").Return(nil, nil).Once()
	handler := New(newNoopLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/sessions", nil)
	req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

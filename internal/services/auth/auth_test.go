package auth

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nerdshive/membership-portal/internal/lib/jwt"
	"github.com/nerdshive/membership-portal/internal/lib/password"
	"github.com/nerdshive/membership-portal/internal/models"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// CodeStoreFake — простое хранилище кодов в памяти.
type CodeStoreFake struct {
	values map[string]string
}

func newCodeStoreFake() *CodeStoreFake {
	return &CodeStoreFake{values: map[string]string{}}
}

func (f *CodeStoreFake) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.values[key] = fmt.Sprint(value)
	return nil
}

func (f *CodeStoreFake) Get(_ context.Context, key string, result any) (bool, error) {
	v, ok := f.values[key]
	if !ok {
		return false, nil
	}
	*result.(*string) = v
	return true, nil
}

func (f *CodeStoreFake) Invalidate(_ context.Context, key string) error {
	delete(f.values, key)
	return nil
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newTestService(users UserRepository, codes CodeStore) *Service {
	maker := jwt.NewMaker("test_secret", 15*time.Minute)
	return NewService(users, codes, nil, maker, 5*time.Minute, newNoopLogger())
}

func hashFor(t *testing.T, raw string) string {
	t.Helper()
	h, err := password.GetHash(raw)
	require.NoError(t, err)
	return h
}

func TestService_CreateIdentity_HashesPassword(t *testing.T) {
	users := new(UserRepoMock)
	svc := newTestService(users, newCodeStoreFake())

	users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.PasswordHash != "" && u.PasswordHash != "secret123" &&
			password.CompareHash(u.PasswordHash, "secret123") == nil
	})).Return("uid-1", nil).Once()

	uid, err := svc.CreateIdentity(context.Background(), models.User{
		Email:  "asha@example.com",
		Role:   models.RoleUser,
		Status: models.UserStatusPending,
	}, "secret123")

	require.NoError(t, err)
	assert.Equal(t, "uid-1", uid)
	users.AssertExpectations(t)
}

func TestService_Login_User(t *testing.T) {
	users := new(UserRepoMock)
	svc := newTestService(users, newCodeStoreFake())

	users.On("GetUserByEmail", mock.Anything, "asha@example.com").Return(&models.User{
		UID:          "uid-1",
		Email:        "asha@example.com",
		PasswordHash: hashFor(t, "secret123"),
		Role:         models.RoleUser,
		Status:       models.UserStatusApproved,
	}, nil).Once()

	result, err := svc.Login(context.Background(), "asha@example.com", "secret123")
	require.NoError(t, err)

	assert.False(t, result.TwoFactorRequired)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, models.RoleUser, result.Role)
}

func TestService_Login_WrongPassword(t *testing.T) {
	users := new(UserRepoMock)
	svc := newTestService(users, newCodeStoreFake())

	users.On("GetUserByEmail", mock.Anything, "asha@example.com").Return(&models.User{
		PasswordHash: hashFor(t, "secret123"),
		Role:         models.RoleUser,
	}, nil).Once()

	_, err := svc.Login(context.Background(), "asha@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	users := new(UserRepoMock)
	svc := newTestService(users, newCodeStoreFake())

	users.On("GetUserByEmail", mock.Anything, "ghost@example.com").
		Return(nil, sql.ErrNoRows).Once()

	_, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_AdminRequiresTwoFactor(t *testing.T) {
	users := new(UserRepoMock)
	codes := newCodeStoreFake()
	svc := newTestService(users, codes)

	users.On("GetUserByEmail", mock.Anything, "admin@nerdshive.com").Return(&models.User{
		UID:          "uid-admin",
		Email:        "admin@nerdshive.com",
		PasswordHash: hashFor(t, "admin123"),
		Role:         models.RoleAdmin,
		Status:       models.UserStatusApproved,
	}, nil).Once()

	result, err := svc.Login(context.Background(), "admin@nerdshive.com", "admin123")
	require.NoError(t, err)

	assert.True(t, result.TwoFactorRequired)
	assert.Empty(t, result.Token)
	assert.NotEmpty(t, codes.values["twofactor:admin@nerdshive.com"])
}

func TestService_VerifyTwoFactor(t *testing.T) {
	users := new(UserRepoMock)
	codes := newCodeStoreFake()
	svc := newTestService(users, codes)

	admin := &models.User{
		UID:          "uid-admin",
		Email:        "admin@nerdshive.com",
		PasswordHash: hashFor(t, "admin123"),
		Role:         models.RoleAdmin,
		Status:       models.UserStatusApproved,
	}
	users.On("GetUserByEmail", mock.Anything, "admin@nerdshive.com").Return(admin, nil)

	// Тестовая фикстура кода подтверждения.
	codes.values["twofactor:admin@nerdshive.com"] = "123456"

	result, err := svc.VerifyTwoFactor(context.Background(), "admin@nerdshive.com", "123456")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, models.RoleAdmin, result.Role)

	// Код одноразовый.
	_, err = svc.VerifyTwoFactor(context.Background(), "admin@nerdshive.com", "123456")
	assert.ErrorIs(t, err, ErrCodeMismatch)
}

func TestService_VerifyTwoFactor_WrongCode(t *testing.T) {
	users := new(UserRepoMock)
	codes := newCodeStoreFake()
	svc := newTestService(users, codes)

	codes.values["twofactor:admin@nerdshive.com"] = "654321"

	_, err := svc.VerifyTwoFactor(context.Background(), "admin@nerdshive.com", "123456")
	assert.ErrorIs(t, err, ErrCodeMismatch)
	users.AssertNotCalled(t, "GetUserByEmail")
}

func TestService_Logout_RevokesToken(t *testing.T) {
	codes := newCodeStoreFake()
	svc := newTestService(new(UserRepoMock), codes)

	maker := jwt.NewMaker("test_secret", 15*time.Minute)
	token, err := maker.GenerateToken("admin@nerdshive.com", models.RoleAdmin, "uid-admin")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))
	assert.NotEmpty(t, codes.values[DenyKey(token)])
}

func TestService_Logout_ExpiredTokenIsNoop(t *testing.T) {
	codes := newCodeStoreFake()
	svc := newTestService(new(UserRepoMock), codes)

	expiredMaker := jwt.NewMaker("test_secret", -time.Minute)
	token, err := expiredMaker.GenerateToken("admin@nerdshive.com", models.RoleAdmin, "uid-admin")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), token))
	assert.Empty(t, codes.values)
}

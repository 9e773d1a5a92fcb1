// Package auth содержит бизнес-логику регистрации, входа и проверки
// кодов подтверждения для администраторов.
package auth

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/nerdshive/membership-portal/internal/lib/jwt"
	"github.com/nerdshive/membership-portal/internal/lib/password"
	"github.com/nerdshive/membership-portal/internal/lib/sl"
	"github.com/nerdshive/membership-portal/internal/models"
)

// Ошибки уровня бизнес-логики аутентификации.
var (
	// ErrInvalidCredentials — почта не найдена или пароль не подошёл.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrCodeMismatch — код подтверждения истёк или не совпал.
	ErrCodeMismatch = errors.New("verification code mismatch")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает пользователя по почте или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// CodeStore описывает временное хранилище кодов подтверждения.
type CodeStore interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Get(ctx context.Context, key string, result any) (bool, error)
	Invalidate(ctx context.Context, key string) error
}

// CodeSender доставляет код подтверждения администратору.
type CodeSender interface {
	SendLoginCode(email, code string) error
}

// LoginResult описывает исход входа: либо готовый токен, либо требование
// подтвердить вход кодом (для администраторов).
type LoginResult struct {
	Token             string
	Role              models.Role
	TwoFactorRequired bool
}

// Service отвечает за создание учётных записей, вход и коды подтверждения.
type Service struct {
	users    UserRepository
	codes    CodeStore
	sender   CodeSender
	jwtMaker jwt.Maker
	codeTTL  time.Duration
	log      *slog.Logger
}

// NewService создает новый экземпляр Service. sender может быть nil:
// тогда код подтверждения попадает только в журнал.
func NewService(users UserRepository, codes CodeStore, sender CodeSender, jwtMaker jwt.Maker, codeTTL time.Duration, log *slog.Logger) *Service {
	return &Service{
		users:    users,
		codes:    codes,
		sender:   sender,
		jwtMaker: jwtMaker,
		codeTTL:  codeTTL,
		log:      log,
	}
}

// CreateIdentity создает учётную запись с хэшированием пароля.
// Роль и статус задаёт вызывающая сторона: регистрационная форма всегда
// передает user/pending.
func (s *Service) CreateIdentity(ctx context.Context, user models.User, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user.PasswordHash = hashed
	return s.users.CreateUser(ctx, user)
}

// Login проверяет пароль пользователя. Обычному участнику сразу выдается
// JWT; администратору выдается код подтверждения, и вход завершает
// VerifyTwoFactor. Статус учётной записи здесь не проверяется: решение
// о доступе к разделам принимает gate.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (*LoginResult, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	if user.Role == models.RoleAdmin {
		code, err := generateCode()
		if err != nil {
			return nil, err
		}
		if err := s.codes.Set(ctx, codeKey(email), code, s.codeTTL); err != nil {
			return nil, err
		}
		if s.sender != nil {
			if err := s.sender.SendLoginCode(user.Email, code); err != nil {
				s.log.Error("failed to send two-factor code", sl.Err(err))
				return nil, err
			}
		} else {
			// SMTP не настроен: код попадает в журнал для оператора.
			s.log.Info("two-factor code issued",
				slog.String("email", email), slog.String("code", code))
		}
		return &LoginResult{Role: user.Role, TwoFactorRequired: true}, nil
	}

	token, err := s.jwtMaker.GenerateToken(user.Email, user.Role, user.UID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Role: user.Role}, nil
}

// VerifyTwoFactor сверяет код подтверждения и выдает JWT администратору.
// Код одноразовый: после успешной сверки он удаляется.
func (s *Service) VerifyTwoFactor(ctx context.Context, email, code string) (*LoginResult, error) {
	var stored string
	found, err := s.codes.Get(ctx, codeKey(email), &stored)
	if err != nil {
		return nil, err
	}
	if !found || stored != code {
		return nil, ErrCodeMismatch
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.codes.Invalidate(ctx, codeKey(email)); err != nil {
		s.log.Warn("failed to invalidate used code", slog.String("email", email))
	}

	token, err := s.jwtMaker.GenerateToken(user.Email, user.Role, user.UID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, Role: user.Role}, nil
}

// GetIdentity возвращает профиль пользователя по UID.
func (s *Service) GetIdentity(ctx context.Context, userUID string) (*models.User, error) {
	return s.users.GetUser(ctx, userUID)
}

// Logout отзывает токен до конца его срока действия. Уже невалидный
// токен отзывать не нужно.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.codes.Set(ctx, DenyKey(token), true, ttl)
}

// DenyKey возвращает ключ отозванного токена в хранилище.
func DenyKey(token string) string {
	return "jwtdeny:" + token
}

func codeKey(email string) string {
	return "twofactor:" + email
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

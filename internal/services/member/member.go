// Package member содержит бизнес-логику управления участниками:
// списки для панели администратора и решения по заявкам на регистрацию.
package member

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nerdshive/membership-portal/internal/models"
)

// ErrAlreadyProcessed — решение по учётной записи уже принято другим запросом.
var ErrAlreadyProcessed = errors.New("member already processed")

// MemberRepository описывает контракт для работы с участниками в базе данных.
type MemberRepository interface {
	ListUsersByStatus(ctx context.Context, role models.Role, status models.UserStatus) ([]*models.User, error)
	UpdateUserStatus(ctx context.Context, userUID string, status models.UserStatus, at time.Time) (int, error)
}

// Service отвечает за списки участников и решения по их учётным записям.
type Service struct {
	repo MemberRepository
	log  *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo MemberRepository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// ListByStatus возвращает участников с заданным статусом. Администраторы
// в списки не попадают.
func (s *Service) ListByStatus(ctx context.Context, status models.UserStatus) ([]*models.User, error) {
	const op = "services.member.ListByStatus"

	if !status.Valid() {
		return nil, fmt.Errorf("%s: unknown status %q", op, status)
	}

	result, err := s.repo.ListUsersByStatus(ctx, models.RoleUser, status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// Process переводит учётную запись из pending в approved или rejected.
// Запись в конечном статусе повторно не изменяется: возвращается
// ErrAlreadyProcessed.
func (s *Service) Process(ctx context.Context, userUID string, status models.UserStatus) error {
	const op = "services.member.Process"

	if status != models.UserStatusApproved && status != models.UserStatusRejected {
		return fmt.Errorf("%s: status %q is not terminal", op, status)
	}

	affected, err := s.repo.UpdateUserStatus(ctx, userUID, status, time.Now())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return ErrAlreadyProcessed
	}

	s.log.Info("member processed",
		slog.String("user_uid", userUID), slog.String("status", string(status)))
	return nil
}

// Package membersession ведет учёт посещений коворкинга: отметки прихода
// и ухода участников.
package membersession

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nerdshive/membership-portal/internal/models"
)

// Ошибки уровня бизнес-логики посещений.
var (
	// ErrPlanNotFound — отметка прихода с несуществующим планом.
	ErrPlanNotFound = errors.New("plan not found")
	// ErrAlreadyClosed — посещение уже закрыто или не принадлежит участнику.
	ErrAlreadyClosed = errors.New("session already closed")
)

// SessionRepository описывает контракт для работы с посещениями в базе данных.
type SessionRepository interface {
	CreateMemberSession(ctx context.Context, session models.MemberSession) (int, error)
	CloseMemberSession(ctx context.Context, id int, userUID string, at time.Time) (int, error)
	ListMemberSessionsByUser(ctx context.Context, userUID string) ([]*models.MemberSession, error)
}

// PlanGetter проверяет, что заявленный план существует.
type PlanGetter interface {
	GetPlan(ctx context.Context, id int) (*models.Plan, error)
}

// Service отвечает за отметки прихода и ухода участников.
type Service struct {
	repo  SessionRepository
	plans PlanGetter
	log   *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo SessionRepository, plans PlanGetter, log *slog.Logger) *Service {
	return &Service{repo: repo, plans: plans, log: log}
}

// CheckIn регистрирует приход участника в рамках выбранного плана.
func (s *Service) CheckIn(ctx context.Context, userUID string, planID int) (int, error) {
	const op = "services.membersession.CheckIn"

	if _, err := s.plans.GetPlan(ctx, planID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrPlanNotFound
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.CreateMemberSession(ctx, models.MemberSession{
		UserUID:     userUID,
		PlanID:      planID,
		CheckInTime: time.Now(),
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("member checked in",
		slog.Int("session_id", id),
		slog.String("user_uid", userUID),
		slog.Int("plan_id", planID))
	return id, nil
}

// CheckOut закрывает посещение участника, фиксируя длительность.
// Чужое или уже закрытое посещение не изменяется: возвращается ErrAlreadyClosed.
func (s *Service) CheckOut(ctx context.Context, id int, userUID string) error {
	const op = "services.membersession.CheckOut"

	affected, err := s.repo.CloseMemberSession(ctx, id, userUID, time.Now())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return ErrAlreadyClosed
	}

	s.log.Info("member checked out",
		slog.Int("session_id", id), slog.String("user_uid", userUID))
	return nil
}

// ListByUser возвращает историю посещений участника, новые первыми.
func (s *Service) ListByUser(ctx context.Context, userUID string) ([]*models.MemberSession, error) {
	const op = "services.membersession.ListByUser"

	result, err := s.repo.ListMemberSessionsByUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// Package joinrequest содержит бизнес-логику заявок на вступление
// с публичной страницы коворкинга.
package joinrequest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nerdshive/membership-portal/internal/models"
)

// ErrAlreadyProcessed — решение по заявке уже принято другим запросом.
var ErrAlreadyProcessed = errors.New("join request already processed")

// JoinRequestRepository описывает контракт для работы с заявками в базе данных.
type JoinRequestRepository interface {
	CreateJoinRequest(ctx context.Context, req models.JoinRequest) (int, error)
	ListJoinRequestsByStatus(ctx context.Context, status models.RequestStatus) ([]*models.JoinRequest, error)
	UpdateJoinRequestStatus(ctx context.Context, id int, status models.RequestStatus, processorUID string, at time.Time) (int, error)
}

// Service отвечает за приём и обработку заявок на вступление.
type Service struct {
	repo JoinRequestRepository
	log  *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo JoinRequestRepository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create регистрирует заявку с публичной страницы. Заявка всегда создается
// со статусом pending.
func (s *Service) Create(ctx context.Context, dummy models.DummyJoinRequest) (int, error) {
	const op = "services.joinrequest.Create"

	id, err := s.repo.CreateJoinRequest(ctx, models.JoinRequest{
		FullName:   dummy.FullName,
		Email:      dummy.Email,
		Phone:      dummy.Phone,
		Profession: dummy.Profession,
		Reason:     dummy.Reason,
		Status:     models.RequestStatusPending,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("join request submitted",
		slog.Int("request_id", id), slog.String("email", dummy.Email))
	return id, nil
}

// ListPending возвращает необработанные заявки для панели администратора.
func (s *Service) ListPending(ctx context.Context) ([]*models.JoinRequest, error) {
	const op = "services.joinrequest.ListPending"

	result, err := s.repo.ListJoinRequestsByStatus(ctx, models.RequestStatusPending)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// Process переводит заявку в конечный статус approved или rejected.
// Обработанная заявка повторно не изменяется: возвращается ErrAlreadyProcessed.
func (s *Service) Process(ctx context.Context, id int, status models.RequestStatus, processorUID string) error {
	const op = "services.joinrequest.Process"

	if !status.Terminal() {
		return fmt.Errorf("%s: status %q is not terminal", op, status)
	}

	affected, err := s.repo.UpdateJoinRequestStatus(ctx, id, status, processorUID, time.Now())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return ErrAlreadyProcessed
	}

	s.log.Info("join request processed",
		slog.Int("request_id", id),
		slog.String("status", string(status)),
		slog.String("processed_by", processorUID))
	return nil
}

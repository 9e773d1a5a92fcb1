// Package payment содержит бизнес-логику подачи и проверки платежей.
package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nerdshive/membership-portal/internal/models"
)

// Ошибки уровня бизнес-логики платежей.
var (
	// ErrPlanNotFound — заявлен платеж за несуществующий план.
	ErrPlanNotFound = errors.New("plan not found")
	// ErrAlreadyProcessed — решение по платежу уже принято другим запросом.
	ErrAlreadyProcessed = errors.New("payment already processed")
)

// PaymentRepository описывает контракт для работы с платежами в базе данных.
type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment models.Payment) (int, error)
	ListPaymentsByStatus(ctx context.Context, status models.PaymentStatus) ([]*models.Payment, error)
	ListPaymentsByUser(ctx context.Context, userUID string) ([]*models.Payment, error)
	UpdatePaymentStatus(ctx context.Context, id int, status models.PaymentStatus, verifierUID string, at time.Time) (int, error)
}

// PlanGetter проверяет, что заявленный план существует.
type PlanGetter interface {
	GetPlan(ctx context.Context, id int) (*models.Plan, error)
}

// Service отвечает за подачу платежей участниками и их проверку администратором.
type Service struct {
	repo  PaymentRepository
	plans PlanGetter
	log   *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo PaymentRepository, plans PlanGetter, log *slog.Logger) *Service {
	return &Service{repo: repo, plans: plans, log: log}
}

// Create регистрирует платеж участника за план. Платеж всегда создается
// со статусом pending независимо от того, что прислал клиент.
func (s *Service) Create(ctx context.Context, userUID string, dummy models.DummyPayment) (int, error) {
	const op = "services.payment.Create"

	if _, err := s.plans.GetPlan(ctx, dummy.PlanID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrPlanNotFound
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.CreatePayment(ctx, models.Payment{
		UserUID:       userUID,
		PlanID:        dummy.PlanID,
		Amount:        dummy.Amount,
		TransactionID: dummy.TransactionID,
		ScreenshotURL: dummy.ScreenshotURL,
		Status:        models.PaymentStatusPending,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("payment submitted",
		slog.Int("payment_id", id),
		slog.String("user_uid", userUID),
		slog.Int("plan_id", dummy.PlanID))
	return id, nil
}

// ListByStatus возвращает платежи с заданным статусом для панели администратора.
func (s *Service) ListByStatus(ctx context.Context, status models.PaymentStatus) ([]*models.Payment, error) {
	const op = "services.payment.ListByStatus"

	result, err := s.repo.ListPaymentsByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListByUser возвращает платежи участника для его личного кабинета.
func (s *Service) ListByUser(ctx context.Context, userUID string) ([]*models.Payment, error) {
	const op = "services.payment.ListByUser"

	result, err := s.repo.ListPaymentsByUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// Review переводит платеж в конечный статус verified или rejected. Если
// решение по платежу уже принято, возвращается ErrAlreadyProcessed: при
// гонке двух администраторов выигрывает первый.
func (s *Service) Review(ctx context.Context, id int, status models.PaymentStatus, verifierUID string) error {
	const op = "services.payment.Review"

	if !status.Terminal() {
		return fmt.Errorf("%s: status %q is not terminal", op, status)
	}

	affected, err := s.repo.UpdatePaymentStatus(ctx, id, status, verifierUID, time.Now())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return ErrAlreadyProcessed
	}

	s.log.Info("payment reviewed",
		slog.Int("payment_id", id),
		slog.String("status", string(status)),
		slog.String("verified_by", verifierUID))
	return nil
}

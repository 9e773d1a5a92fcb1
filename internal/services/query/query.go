// Package query содержит бизнес-логику вопросов участников администрации.
package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nerdshive/membership-portal/internal/models"
)

// ErrAlreadyAnswered — на вопрос уже дан ответ другим запросом.
var ErrAlreadyAnswered = errors.New("query already answered")

// QueryRepository описывает контракт для работы с вопросами в базе данных.
type QueryRepository interface {
	CreateQuery(ctx context.Context, query models.Query) (int, error)
	ListQueriesByUser(ctx context.Context, userUID string) ([]*models.Query, error)
	ListAllQueries(ctx context.Context) ([]*models.Query, error)
	AnswerQuery(ctx context.Context, id int, response, responderUID string, at time.Time) (int, error)
}

// UserGetter возвращает профиль участника: имя автора денормализуется
// в вопрос на момент подачи.
type UserGetter interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// Service отвечает за подачу вопросов участниками и ответы администраторов.
type Service struct {
	repo  QueryRepository
	users UserGetter
	log   *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo QueryRepository, users UserGetter, log *slog.Logger) *Service {
	return &Service{repo: repo, users: users, log: log}
}

// Create регистрирует вопрос участника. Имя автора фиксируется на момент
// подачи, чтобы история переписки не менялась задним числом.
func (s *Service) Create(ctx context.Context, userUID, question string) (int, error) {
	const op = "services.query.Create"

	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.CreateQuery(ctx, models.Query{
		UserUID:  userUID,
		UserName: user.FullName,
		Question: question,
		Status:   models.QueryStatusPending,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("query submitted",
		slog.Int("query_id", id), slog.String("user_uid", userUID))
	return id, nil
}

// ListByUser возвращает вопросы участника для его личного кабинета.
func (s *Service) ListByUser(ctx context.Context, userUID string) ([]*models.Query, error) {
	const op = "services.query.ListByUser"

	result, err := s.repo.ListQueriesByUser(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAll возвращает все вопросы для панели администратора.
func (s *Service) ListAll(ctx context.Context) ([]*models.Query, error) {
	const op = "services.query.ListAll"

	result, err := s.repo.ListAllQueries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// Respond записывает ответ администратора и переводит вопрос в answered.
// На уже отвеченный вопрос повторный ответ не записывается.
func (s *Service) Respond(ctx context.Context, id int, response, responderUID string) error {
	const op = "services.query.Respond"

	affected, err := s.repo.AnswerQuery(ctx, id, response, responderUID, time.Now())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return ErrAlreadyAnswered
	}

	s.log.Info("query answered",
		slog.Int("query_id", id), slog.String("answered_by", responderUID))
	return nil
}

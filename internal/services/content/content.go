// Package content отдает и редактирует справочные документы портала:
// правила, FAQ, реквизиты оплаты, данные Wi-Fi.
package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nerdshive/membership-portal/internal/models"
)

// ErrNotFound — документа с таким ключом нет.
var ErrNotFound = errors.New("content not found")

const (
	cacheKey = "content:all"
	cacheTTL = 10 * time.Minute
)

// ContentRepository описывает контракт для работы с документами в базе данных.
type ContentRepository interface {
	ListContent(ctx context.Context) ([]*models.Content, error)
	GetContent(ctx context.Context, id string) (*models.Content, error)
	UpdateContent(ctx context.Context, id, body, editorUID string, at time.Time) (int, error)
}

// Cache описывает кэш списка документов.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service отдает документы из кэша и сбрасывает его при правках.
type Service struct {
	repo  ContentRepository
	cache Cache
	log   *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo ContentRepository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

// List возвращает все документы портала.
func (s *Service) List(ctx context.Context) ([]*models.Content, error) {
	const op = "services.content.List"

	var cached []*models.Content
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		s.log.Warn("content cache unavailable", slog.String("op", op))
	}
	if found {
		return cached, nil
	}

	docs, err := s.repo.ListContent(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(ctx, cacheKey, docs, cacheTTL); err != nil {
		s.log.Warn("failed to cache content", slog.String("op", op))
	}
	return docs, nil
}

// Get возвращает документ по ключу.
func (s *Service) Get(ctx context.Context, id string) (*models.Content, error) {
	const op = "services.content.Get"

	doc, err := s.repo.GetContent(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return doc, nil
}

// Update заменяет текст документа и сбрасывает кэш, чтобы участники
// сразу увидели новую редакцию.
func (s *Service) Update(ctx context.Context, id, body, editorUID string) error {
	const op = "services.content.Update"

	affected, err := s.repo.UpdateContent(ctx, id, body, editorUID, time.Now())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if err := s.cache.Invalidate(ctx, cacheKey); err != nil {
		s.log.Warn("failed to invalidate content cache", slog.String("op", op))
	}

	s.log.Info("content updated",
		slog.String("content_id", id), slog.String("updated_by", editorUID))
	return nil
}

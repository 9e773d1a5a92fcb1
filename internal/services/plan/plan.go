// Package plan отдает каталог тарифных планов. Каталог меняется редко,
// поэтому список кэшируется в Redis.
package plan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nerdshive/membership-portal/internal/models"
)

const (
	cacheKey = "plans:all"
	cacheTTL = 10 * time.Minute
)

// PlanRepository описывает контракт для работы с тарифными планами в базе данных.
type PlanRepository interface {
	ListPlans(ctx context.Context) ([]*models.Plan, error)
	GetPlan(ctx context.Context, id int) (*models.Plan, error)
}

// Cache описывает кэш списка планов.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Service отдает каталог планов, сперва заглядывая в кэш.
type Service struct {
	repo  PlanRepository
	cache Cache
	log   *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo PlanRepository, cache Cache, log *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, log: log}
}

// List возвращает планы, отсортированные по цене. Промах кэша не считается
// ошибкой: список читается из базы и кладётся в кэш заново.
func (s *Service) List(ctx context.Context) ([]*models.Plan, error) {
	const op = "services.plan.List"

	var cached []*models.Plan
	found, err := s.cache.Get(ctx, cacheKey, &cached)
	if err != nil {
		s.log.Warn("plan cache unavailable", slog.String("op", op))
	}
	if found {
		return cached, nil
	}

	plans, err := s.repo.ListPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.cache.Set(ctx, cacheKey, plans, cacheTTL); err != nil {
		s.log.Warn("failed to cache plans", slog.String("op", op))
	}
	return plans, nil
}

// Get возвращает план по ID.
func (s *Service) Get(ctx context.Context, id int) (*models.Plan, error) {
	const op = "services.plan.Get"

	plan, err := s.repo.GetPlan(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return plan, nil
}

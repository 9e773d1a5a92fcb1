package registration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nerdshive/membership-portal/internal/cache"
)

// ErrDraftNotFound возвращается, когда черновик истёк или не существовал.
var ErrDraftNotFound = errors.New("registration draft not found")

// DraftStore описывает хранилище регистрационных черновиков.
type DraftStore interface {
	// Save сохраняет черновик, продлевая его время жизни.
	Save(ctx context.Context, draft *Draft) error
	// Get возвращает черновик по ID или ErrDraftNotFound.
	Get(ctx context.Context, id string) (*Draft, error)
	// Delete удаляет черновик.
	Delete(ctx context.Context, id string) error
}

// RedisDraftStore хранит черновики в Redis с ограниченным временем жизни.
type RedisDraftStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewRedisDraftStore создает хранилище черновиков поверх Redis.
func NewRedisDraftStore(c *cache.Cache, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{
		cache: c,
		ttl:   ttl,
	}
}

func draftKey(id string) string {
	return "regdraft:" + id
}

// Save сохраняет черновик, продлевая его время жизни.
func (s *RedisDraftStore) Save(ctx context.Context, draft *Draft) error {
	const op = "registration.RedisDraftStore.Save"
	if err := s.cache.Set(ctx, draftKey(draft.ID), draft, s.ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Get возвращает черновик по ID или ErrDraftNotFound.
func (s *RedisDraftStore) Get(ctx context.Context, id string) (*Draft, error) {
	const op = "registration.RedisDraftStore.Get"
	var draft Draft
	found, err := s.cache.Get(ctx, draftKey(id), &draft)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil, ErrDraftNotFound
	}
	return &draft, nil
}

// Delete удаляет черновик.
func (s *RedisDraftStore) Delete(ctx context.Context, id string) error {
	const op = "registration.RedisDraftStore.Delete"
	if err := s.cache.Invalidate(ctx, draftKey(id)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

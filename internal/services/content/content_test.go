package content

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nerdshive/membership-portal/internal/models"
)

type ContentRepoMock struct{ mock.Mock }

func (m *ContentRepoMock) ListContent(ctx context.Context) ([]*models.Content, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Content), args.Error(1)
}

func (m *ContentRepoMock) GetContent(ctx context.Context, id string) (*models.Content, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Content), args.Error(1)
}

func (m *ContentRepoMock) UpdateContent(ctx context.Context, id, body, editorUID string, at time.Time) (int, error) {
	args := m.Called(ctx, id, body, editorUID, at)
	return args.Int(0), args.Error(1)
}

// CacheFake — кэш в памяти с подсчётом сбросов.
type CacheFake struct {
	values      map[string][]*models.Content
	invalidated int
}

func newCacheFake() *CacheFake {
	return &CacheFake{values: map[string][]*models.Content{}}
}

func (f *CacheFake) Get(_ context.Context, key string, result any) (bool, error) {
	v, ok := f.values[key]
	if !ok {
		return false, nil
	}
	*result.(*[]*models.Content) = v
	return true, nil
}

func (f *CacheFake) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.values[key] = value.([]*models.Content)
	return nil
}

func (f *CacheFake) Invalidate(_ context.Context, key string) error {
	delete(f.values, key)
	f.invalidated++
	return nil
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_List_PopulatesCache(t *testing.T) {
	repo := new(ContentRepoMock)
	cache := newCacheFake()
	svc := NewService(repo, cache, newNoopLogger())

	docs := []*models.Content{{ID: "rules", Title: "House Rules"}}
	repo.On("ListContent", mock.Anything).Return(docs, nil).Once()

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, docs, first)

	// Второй вызов обслуживается из кэша без обращения к базе.
	second, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, docs, second)
	repo.AssertNumberOfCalls(t, "ListContent", 1)
}

func TestService_Update_InvalidatesCache(t *testing.T) {
	repo := new(ContentRepoMock)
	cache := newCacheFake()
	svc := NewService(repo, cache, newNoopLogger())

	cache.values[cacheKey] = []*models.Content{{ID: "rules"}}
	repo.On("UpdateContent", mock.Anything, "rules", "No loud calls in the open area.",
		"uid-admin", mock.Anything).Return(1, nil).Once()

	err := svc.Update(context.Background(), "rules", "No loud calls in the open area.", "uid-admin")
	require.NoError(t, err)

	assert.Equal(t, 1, cache.invalidated)
	assert.NotContains(t, cache.values, cacheKey)
}

func TestService_Update_UnknownKey(t *testing.T) {
	repo := new(ContentRepoMock)
	cache := newCacheFake()
	svc := NewService(repo, cache, newNoopLogger())

	repo.On("UpdateContent", mock.Anything, "nope", "text", "uid-admin", mock.Anything).
		Return(0, nil).Once()

	err := svc.Update(context.Background(), "nope", "text", "uid-admin")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, cache.invalidated)
}

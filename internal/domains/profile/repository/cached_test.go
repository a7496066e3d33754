package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profile-backend/internal/domains/profile/model"
)

// memoryCache stores JSON like the Redis cache does.
type memoryCache struct {
	items   map[string][]byte
	gets    int
	failGet bool
	pingErr error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.gets++
	if c.failGet {
		return false, errors.New("cache offline")
	}
	raw, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.items[key] = raw
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.items, k)
	}
	return nil
}

func (c *memoryCache) Ping(ctx context.Context) error { return c.pingErr }

// countingRepo counts List calls on the wrapped store.
type countingRepo struct {
	RepositoryInterface
	lists int
}

func (r *countingRepo) List(ctx context.Context) ([]model.Profile, error) {
	r.lists++
	return r.RepositoryInterface.List(ctx)
}

func TestCached_ListReadsThrough(t *testing.T) {
	inner := &countingRepo{RepositoryInterface: newSQLiteRepo(t)}
	c := newMemoryCache()
	repo := NewCachedRepository(inner, c, time.Minute)
	ctx := context.Background()

	_, _, err := repo.Upsert(ctx, adaProfile())
	require.NoError(t, err)

	first, err := repo.List(ctx)
	require.NoError(t, err)
	second, err := repo.List(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, inner.lists)
	assert.Equal(t, first[0].Email, second[0].Email)
	assert.Equal(t, first[0].Projects, second[0].Projects)
}

func TestCached_WritesInvalidate(t *testing.T) {
	inner := &countingRepo{RepositoryInterface: newSQLiteRepo(t)}
	c := newMemoryCache()
	repo := NewCachedRepository(inner, c, time.Minute)
	ctx := context.Background()

	stored, _, err := repo.Upsert(ctx, adaProfile())
	require.NoError(t, err)
	_, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Contains(t, c.items, snapshotCacheKey)

	_, err = repo.Update(ctx, stored.ID, func(p *model.Profile) { p.Name = "Ada L" })
	require.NoError(t, err)
	assert.NotContains(t, c.items, snapshotCacheKey)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada L", all[0].Name)
	assert.Equal(t, 2, inner.lists)
}

func TestCached_CacheFailureFallsBackToStore(t *testing.T) {
	inner := &countingRepo{RepositoryInterface: newSQLiteRepo(t)}
	c := newMemoryCache()
	c.failGet = true
	repo := NewCachedRepository(inner, c, 0)
	ctx := context.Background()

	_, _, err := repo.Upsert(ctx, adaProfile())
	require.NoError(t, err)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Equal(t, 1, inner.lists)
}

func TestCached_PingIgnoresCache(t *testing.T) {
	c := newMemoryCache()
	c.pingErr = errors.New("cache offline")
	repo := NewCachedRepository(newSQLiteRepo(t), c, time.Minute)

	assert.NoError(t, repo.Ping(context.Background()))
}

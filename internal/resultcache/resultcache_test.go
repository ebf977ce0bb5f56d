package resultcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testResult struct {
	Seed   uint64 `json:"seed"`
	Stages int    `json:"stages"`
}

func newTestCache(t *testing.T, ttl time.Duration) (*ResultCache, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewResultCache(client, ttl), mr.Close
}

func TestNewResultCache(t *testing.T) {
	cache, closeFn := newTestCache(t, 30*time.Second)
	defer closeFn()

	assert.NotNil(t, cache)
	assert.Equal(t, 30*time.Second, cache.ttl)
}

func TestNewResultCacheDefaultTTL(t *testing.T) {
	cache, closeFn := newTestCache(t, 0)
	defer closeFn()

	assert.Equal(t, 60*time.Second, cache.ttl)
}

func TestResultCacheGetSet(t *testing.T) {
	cache, closeFn := newTestCache(t, 5*time.Second)
	defer closeFn()
	ctx := context.Background()

	key := "run:abc123"
	data := testResult{Seed: 42, Stages: 8}
	require.NoError(t, cache.Set(ctx, key, data))

	var retrieved testResult
	require.NoError(t, cache.Get(ctx, key, &retrieved))
	assert.Equal(t, data, retrieved)
}

func TestResultCacheGetMiss(t *testing.T) {
	cache, closeFn := newTestCache(t, 5*time.Second)
	defer closeFn()
	ctx := context.Background()

	var data testResult
	err := cache.Get(ctx, "nonexistent:key", &data)
	assert.ErrorIs(t, err, redis.Nil)
}

func TestResultCacheDelete(t *testing.T) {
	cache, closeFn := newTestCache(t, 5*time.Second)
	defer closeFn()
	ctx := context.Background()

	key := "run:delete"
	require.NoError(t, cache.Set(ctx, key, testResult{Seed: 1}))
	require.NoError(t, cache.Delete(ctx, key))

	var retrieved testResult
	err := cache.Get(ctx, key, &retrieved)
	assert.ErrorIs(t, err, redis.Nil)
}

func TestResultCacheGetOrSet(t *testing.T) {
	cache, closeFn := newTestCache(t, 5*time.Second)
	defer closeFn()
	ctx := context.Background()

	key := "run:getorset"
	loaderCalled := false
	loader := func() (interface{}, error) {
		loaderCalled = true
		return testResult{Seed: 99, Stages: 8}, nil
	}

	var data testResult
	require.NoError(t, cache.GetOrSet(ctx, key, &data, loader))
	assert.True(t, loaderCalled)
	assert.Equal(t, uint64(99), data.Seed)

	loaderCalled = false
	var data2 testResult
	require.NoError(t, cache.GetOrSet(ctx, key, &data2, loader))
	assert.False(t, loaderCalled)
	assert.Equal(t, uint64(99), data2.Seed)
}

func TestResultCacheGetOrSetLoaderError(t *testing.T) {
	cache, closeFn := newTestCache(t, 5*time.Second)
	defer closeFn()
	ctx := context.Background()

	expectedErr := errors.New("loader failed")
	loader := func() (interface{}, error) {
		return nil, expectedErr
	}

	var data testResult
	err := cache.GetOrSet(ctx, "run:error", &data, loader)
	assert.Equal(t, expectedErr, err)
}

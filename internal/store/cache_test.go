// internal/store/cache_test.go
package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transparency-service/internal/common/database"
	"transparency-service/internal/common/logger"
)

func newTestCache(t *testing.T, ttl time.Duration) (*ReportCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := &database.RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	t.Cleanup(func() { client.Close() })

	return NewReportCache(client, ttl, logger.NewTestLogger(t)), mr
}

func TestReportCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t, time.Hour)
	ctx := context.Background()

	record := sampleRecord("r-1", time.Now().UTC().Truncate(time.Second))
	cache.Set(ctx, &record)

	got, ok := cache.Get(ctx, "r-1")
	require.True(t, ok)
	assert.Equal(t, record, *got)
}

func TestReportCacheMiss(t *testing.T) {
	cache, _ := newTestCache(t, time.Hour)

	got, ok := cache.Get(context.Background(), "never-stored")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestReportCacheExpiry(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	record := sampleRecord("r-1", time.Now().UTC())
	cache.Set(ctx, &record)

	mr.FastForward(2 * time.Minute)

	_, ok := cache.Get(ctx, "r-1")
	assert.False(t, ok)
}

func TestReportCacheCorruptEntry(t *testing.T) {
	cache, mr := newTestCache(t, time.Hour)
	require.NoError(t, mr.Set("report:r-1", "{not json"))

	got, ok := cache.Get(context.Background(), "r-1")
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestReportCacheBackendDownIsSoft(t *testing.T) {
	cache, mr := newTestCache(t, time.Hour)
	mr.Close()

	record := sampleRecord("r-1", time.Now().UTC())
	// Neither call may panic or error out to the caller.
	cache.Set(context.Background(), &record)
	_, ok := cache.Get(context.Background(), "r-1")
	assert.False(t, ok)
}

//go:build integration

package cache_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"rollcall/internal/attendance/models"
	"rollcall/internal/attendance/store/cache"
	"rollcall/internal/attendance/store/memory"
	"rollcall/pkg/testutil/containers"
)

// countingRegistry counts pass-through lookups.
type countingRegistry struct {
	inner *memory.FenceRegistry
	calls int
	err   error
}

func (r *countingRegistry) Fences(ctx context.Context) ([]models.Fence, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	return r.inner.Fences(ctx)
}

type FenceCacheSuite struct {
	suite.Suite
	redis    *containers.RedisContainer
	registry *countingRegistry
	cache    *cache.FenceCache
}

func TestFenceCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(FenceCacheSuite))
}

func (s *FenceCacheSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
}

func (s *FenceCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
	inner := memory.NewFenceRegistry()
	inner.Add(models.Fence{
		Name:         "HQ",
		Center:       models.Coordinate{Latitude: 37.7749, Longitude: -122.4194},
		RadiusMeters: 100,
	})
	s.registry = &countingRegistry{inner: inner}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.cache = cache.NewFenceCache(s.registry, s.redis.Client, time.Minute, cache.WithLogger(logger))
}

func (s *FenceCacheSuite) TestReadThrough() {
	ctx := context.Background()

	first, err := s.cache.Fences(ctx)
	s.Require().NoError(err)
	second, err := s.cache.Fences(ctx)
	s.Require().NoError(err)

	s.Equal(1, s.registry.calls)
	s.Equal(first, second)
	s.Require().Len(second, 1)
	s.Equal("HQ", second[0].Name)

	ttl, err := s.redis.Client.TTL(ctx, cache.FenceCacheKey).Result()
	s.Require().NoError(err)
	s.Positive(ttl)
}

func (s *FenceCacheSuite) TestCorruptEntryFallsThrough() {
	ctx := context.Background()
	s.Require().NoError(s.redis.Client.Set(ctx, cache.FenceCacheKey, "not json", time.Minute).Err())

	fences, err := s.cache.Fences(ctx)
	s.Require().NoError(err)
	s.Len(fences, 1)
	s.Equal(1, s.registry.calls)
}

func (s *FenceCacheSuite) TestRegistryErrorIsNotCached() {
	ctx := context.Background()
	s.registry.err = errors.New("registry down")

	_, err := s.cache.Fences(ctx)
	s.Error(err)

	exists, err := s.redis.Client.Exists(ctx, cache.FenceCacheKey).Result()
	s.Require().NoError(err)
	s.Zero(exists)
}

// Package cache adds a Redis read-through cache in front of a location
// registry. Entries expire by TTL only; fence edits become visible within
// one TTL.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"rollcall/internal/attendance/models"
	"rollcall/internal/attendance/ports"
	id "rollcall/pkg/domain"
)

var fenceCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "rollcall_fence_cache_lookups_total",
	Help: "Fence cache lookups by result",
}, []string{"result"}) // result: "hit", "miss", "error"

// FenceCacheKey holds the JSON-encoded fence set.
const FenceCacheKey = "rollcall:fences:v1"

type FenceCache struct {
	next   ports.LocationRegistry
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

type Option func(*FenceCache)

func WithLogger(logger *slog.Logger) Option {
	return func(c *FenceCache) {
		c.logger = logger
	}
}

func NewFenceCache(next ports.LocationRegistry, client *redis.Client, ttl time.Duration, opts ...Option) *FenceCache {
	c := &FenceCache{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

type cachedFence struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Latitude     float64 `json:"lat"`
	Longitude    float64 `json:"lng"`
	RadiusMeters float64 `json:"radius_m"`
}

// Fences serves from Redis when possible. Cache failures never fail the
// lookup; they fall through to the wrapped registry.
func (c *FenceCache) Fences(ctx context.Context) ([]models.Fence, error) {
	raw, err := c.client.Get(ctx, FenceCacheKey).Bytes()
	switch {
	case err == nil:
		fences, decodeErr := decodeFences(raw)
		if decodeErr == nil {
			fenceCacheLookups.WithLabelValues("hit").Inc()
			return fences, nil
		}
		c.logger.WarnContext(ctx, "discarding undecodable fence cache entry", "error", decodeErr)
	case errors.Is(err, redis.Nil):
		fenceCacheLookups.WithLabelValues("miss").Inc()
	default:
		fenceCacheLookups.WithLabelValues("error").Inc()
		c.logger.WarnContext(ctx, "fence cache read failed", "error", err)
	}

	fences, err := c.next.Fences(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := encodeFences(fences); err == nil {
		if err := c.client.Set(ctx, FenceCacheKey, encoded, c.ttl).Err(); err != nil {
			c.logger.WarnContext(ctx, "fence cache write failed", "error", err)
		}
	}
	return fences, nil
}

func encodeFences(fences []models.Fence) ([]byte, error) {
	out := make([]cachedFence, 0, len(fences))
	for _, f := range fences {
		out = append(out, cachedFence{
			ID:           f.ID.String(),
			Name:         f.Name,
			Latitude:     f.Center.Latitude,
			Longitude:    f.Center.Longitude,
			RadiusMeters: f.RadiusMeters,
		})
	}
	return json.Marshal(out)
}

func decodeFences(raw []byte) ([]models.Fence, error) {
	var cached []cachedFence
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, err
	}
	fences := make([]models.Fence, 0, len(cached))
	for _, cf := range cached {
		fenceID, err := id.ParseFenceID(cf.ID)
		if err != nil {
			return nil, err
		}
		fences = append(fences, models.Fence{
			ID:           fenceID,
			Name:         cf.Name,
			Center:       models.Coordinate{Latitude: cf.Latitude, Longitude: cf.Longitude},
			RadiusMeters: cf.RadiusMeters,
		})
	}
	return fences, nil
}

package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore_SlidingWindow(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	store := NewInMemoryStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	for i := range 3 {
		res, err := store.Allow(ctx, "k", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 2-i, res.Remaining)
		now = now.Add(10 * time.Second)
	}

	res, err := store.Allow(ctx, "k", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, time.Date(2026, 5, 1, 9, 1, 0, 0, time.UTC), res.ResetAt)

	// The first attempt leaves the window exactly one minute after it was made.
	now = time.Date(2026, 5, 1, 9, 1, 0, 0, time.UTC)
	res, err = store.Allow(ctx, "k", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestInMemoryStore_KeysAreIndependent(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	_, err := store.Allow(ctx, "a", 1, time.Minute)
	require.NoError(t, err)
	res, err := store.Allow(ctx, "a", 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	res, err = store.Allow(ctx, "b", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestResult_RetryAfterRoundsUp(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, 2, Result{ResetAt: now.Add(1500 * time.Millisecond)}.RetryAfter(now))
	assert.Equal(t, 1, Result{ResetAt: now.Add(-time.Second)}.RetryAfter(now))
}

func TestInMemoryStore_ForgetsIdleSubjects(t *testing.T) {
	now := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	store := NewInMemoryStore()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		_, err := store.Allow(ctx, key, 3, time.Minute)
		require.NoError(t, err)
	}
	require.Equal(t, 3, store.Len())

	now = now.Add(2 * time.Minute)
	res, err := store.Allow(ctx, "d", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, store.Len(), "expired subjects should be dropped")
}

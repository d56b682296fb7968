package ratelimit

import (
	"context"
	"sync"
	"time"
)

// InMemoryStore keeps sliding windows in process memory. Keys whose window
// has fully expired are swept at most once per window, so idle subjects do
// not accumulate.
type InMemoryStore struct {
	mu        sync.Mutex
	windows   map[string]*slidingWindow
	lastSweep time.Time
	now       func() time.Time
}

type slidingWindow struct {
	timestamps []time.Time
	span       time.Duration
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		windows: make(map[string]*slidingWindow),
		now:     time.Now,
	}
}

func (s *InMemoryStore) Allow(_ context.Context, key string, limit int, window time.Duration) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now, window)

	timestamps := []time.Time(nil)
	if sw, ok := s.windows[key]; ok {
		timestamps = prune(sw.timestamps, now.Add(-window))
	}

	if len(timestamps) >= limit {
		s.windows[key] = &slidingWindow{timestamps: timestamps, span: window}
		return Result{
			Allowed: false,
			Limit:   limit,
			ResetAt: timestamps[0].Add(window),
		}, nil
	}

	timestamps = append(timestamps, now)
	s.windows[key] = &slidingWindow{timestamps: timestamps, span: window}
	return Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - len(timestamps),
		ResetAt:   timestamps[0].Add(window),
	}, nil
}

// Len reports how many keys currently hold a window.
func (s *InMemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}

// sweep deletes keys whose newest timestamp has left its window. Caller holds mu.
func (s *InMemoryStore) sweep(now time.Time, interval time.Duration) {
	if now.Sub(s.lastSweep) < interval {
		return
	}
	s.lastSweep = now
	for key, sw := range s.windows {
		if len(prune(sw.timestamps, now.Add(-sw.span))) == 0 {
			delete(s.windows, key)
		}
	}
}

// prune drops timestamps at or before cutoff. Timestamps are ascending.
func prune(timestamps []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(timestamps) && !timestamps[i].After(cutoff) {
		i++
	}
	return timestamps[i:]
}

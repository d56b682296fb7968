// Package ratelimit throttles mark-attendance attempts per subject.
//
// A sliding window of attempt timestamps is kept per key. The Redis store
// shares the window across replicas; the memory store serves single-node and
// dev deployments.
package ratelimit

import (
	"context"
	"time"
)

// Result describes the state of a key's window after a check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// RetryAfter is the wait until the oldest attempt leaves the window, rounded
// up to a whole second.
func (r Result) RetryAfter(now time.Time) int {
	d := r.ResetAt.Sub(now)
	if d <= 0 {
		return 1
	}
	secs := int(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	return secs
}

// Store records an attempt for key if fewer than limit attempts fall inside
// window.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (Result, error)
}

func subjectKey(subject string) string {
	return "rollcall:ratelimit:mark:" + subject
}

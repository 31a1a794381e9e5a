// Package ratelimit throttles slash-command usage per Discord user with a
// fixed time window.
package ratelimit

import (
	"strings"
	"sync"
	"time"
)

// Limiter reports whether a user is within their command quota.
type Limiter interface {
	Allow(userID string) bool
}

// MemoryLimiter is a process-local fixed-window limiter. Suitable for a bot
// running as a single process.
type MemoryLimiter struct {
	limit  int
	window time.Duration

	mu     sync.Mutex
	counts map[string]int
	slot   int64
}

// NewMemoryLimiter allows limit commands per user per window.
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &MemoryLimiter{
		limit:  limit,
		window: window,
		counts: make(map[string]int),
	}
}

// Allow consumes one slot for the user. Counts reset at window boundaries.
func (l *MemoryLimiter) Allow(userID string) bool {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		userID = "unknown"
	}
	slot := time.Now().UTC().UnixMilli() / l.window.Milliseconds()

	l.mu.Lock()
	defer l.mu.Unlock()
	if slot != l.slot {
		l.slot = slot
		l.counts = make(map[string]int)
	}
	l.counts[userID]++
	return l.counts[userID] <= l.limit
}

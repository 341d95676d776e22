package auth

import (
	"sync"
	"time"
)

// Login throttling defaults: five failures inside the window block the
// client for blockFor.
const (
	maxAttempts    = 5
	blockDuration  = 15 * time.Minute
	windowDuration = 15 * time.Minute
	maxTracked     = 10000
)

type attemptData struct {
	count        int
	firstAttempt time.Time
}

// Limiter counts failed logins per client key (normally the IP).
type Limiter struct {
	mu       sync.Mutex
	attempts map[string]*attemptData
	blocked  map[string]time.Time
	now      func() time.Time
}

// NewLimiter returns an empty Limiter.
func NewLimiter() *Limiter {
	return &Limiter{
		attempts: make(map[string]*attemptData),
		blocked:  make(map[string]time.Time),
		now:      time.Now,
	}
}

// Allow returns false while key is blocked.  Expired blocks are dropped.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if until, ok := l.blocked[key]; ok {
		if l.now().Before(until) {
			return false
		}
		delete(l.blocked, key)
		delete(l.attempts, key)
	}
	return true
}

// RecordFailure counts one failure and blocks key at the threshold.
func (l *Limiter) RecordFailure(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.attempts) > maxTracked {
		l.prune(now)
	}

	data, ok := l.attempts[key]
	if !ok || now.Sub(data.firstAttempt) > windowDuration {
		data = &attemptData{firstAttempt: now}
		l.attempts[key] = data
	}
	data.count++
	if data.count >= maxAttempts {
		l.blocked[key] = now.Add(blockDuration)
	}
}

// Reset clears key after a successful login.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, key)
	delete(l.blocked, key)
}

// prune drops windows and blocks that have expired.  Caller holds mu.
func (l *Limiter) prune(now time.Time) {
	for k, d := range l.attempts {
		if now.Sub(d.firstAttempt) > windowDuration {
			delete(l.attempts, k)
		}
	}
	for k, until := range l.blocked {
		if !now.Before(until) {
			delete(l.blocked, k)
		}
	}
}

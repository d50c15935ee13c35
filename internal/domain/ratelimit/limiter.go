package ratelimit

// Package ratelimit implements a fixed-window request counter keyed by an
// arbitrary string (user ID, email, client IP). It is process-local and
// mutex-guarded; checks on the same key are linearizable. For smoothing
// bursty but otherwise legitimate traffic at the transport layer, use a
// token bucket instead; this limiter exists to cap discrete sensitive
// actions with a hard per-window count.

import (
	"sync"
	"time"
)

// Result is the outcome of one limiter check.
type Result struct {
	// Allowed reports whether the request may proceed.
	Allowed bool
	// Remaining is the number of further requests permitted in the current
	// window. Always in [0, max-1]: an allowed request has consumed itself.
	Remaining int
	// ResetIn is how long until the current window expires. Never negative.
	ResetIn time.Duration
}

type window struct {
	count   int
	resetAt time.Time
}

// Limiter counts requests per key within fixed windows of equal length.
type Limiter struct {
	mu      sync.Mutex
	windows map[string]*window
	max     int
	window  time.Duration
	now     func() time.Time
}

// Option customizes a Limiter.
type Option func(*Limiter)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// New creates a limiter allowing max requests per key in each window.
func New(max int, per time.Duration, opts ...Option) *Limiter {
	l := &Limiter{
		windows: make(map[string]*window),
		max:     max,
		window:  per,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Check records one request against the key and reports whether it is
// allowed. A fresh key, or one whose window has expired, starts a new
// window with this request as its first. A request arriving at the exact
// instant a window ends still belongs to that window; the next instant
// starts a new one.
func (l *Limiter) Check(key string) Result {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &window{count: 1, resetAt: now.Add(l.window)}
		l.windows[key] = w
		return Result{Allowed: true, Remaining: l.max - 1, ResetIn: l.window}
	}

	resetIn := w.resetAt.Sub(now)
	if resetIn < 0 {
		resetIn = 0
	}
	if w.count < l.max {
		w.count++
		return Result{Allowed: true, Remaining: l.max - w.count, ResetIn: resetIn}
	}
	return Result{Allowed: false, Remaining: 0, ResetIn: resetIn}
}

// Allow is a convenience wrapper over Check for callers that only need the
// boolean outcome.
func (l *Limiter) Allow(key string) bool {
	return l.Check(key).Allowed
}

// Cleanup removes entries whose window has expired. Callers that limit
// high-cardinality keys should invoke it periodically; nothing runs it
// automatically.
func (l *Limiter) Cleanup() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, w := range l.windows {
		if now.After(w.resetAt) {
			delete(l.windows, key)
		}
	}
}

// Len returns the number of tracked keys, including expired ones not yet
// cleaned up.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.windows)
}

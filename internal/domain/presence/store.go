package presence

// Package presence tracks currently active site visitors in process-local
// memory. Records expire after a fixed TTL; eviction is lazy and happens on
// every write and read, so no background sweeper is required. State does not
// survive a restart and is not shared between instances by design.

import (
	"sort"
	"sync"
	"time"
)

// DefaultTTL is how long a visitor stays "active" after their last heartbeat.
const DefaultTTL = 5 * time.Minute

// Record is the transient per-visitor activity state.
type Record struct {
	VisitorID string    `json:"visitor_id"`
	Page      string    `json:"page"`
	UserAgent string    `json:"user_agent"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
}

// Heartbeat carries one visitor ping. Name and Email are an optional
// denormalized snapshot of the authenticated identity, if any.
type Heartbeat struct {
	VisitorID string
	Page      string
	UserAgent string
	Name      string
	Email     string
}

// Store is a mutex-guarded map of visitor ID to Record. Construct one at
// process start and inject it into handlers; it is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	visitors map[string]*Record
	ttl      time.Duration
	now      func() time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithTTL overrides the active-visitor TTL.
func WithTTL(d time.Duration) Option {
	return func(s *Store) { s.ttl = d }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates an empty presence store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		visitors: make(map[string]*Record),
		ttl:      DefaultTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Heartbeat upserts the visitor's record. On first sight FirstSeen is set;
// every call refreshes LastSeen and the current page.
func (s *Store) Heartbeat(hb Heartbeat) {
	if hb.VisitorID == "" {
		return
	}
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked(now)

	rec, ok := s.visitors[hb.VisitorID]
	if !ok {
		rec = &Record{VisitorID: hb.VisitorID, FirstSeen: now}
		s.visitors[hb.VisitorID] = rec
	}
	rec.Page = hb.Page
	rec.LastSeen = now
	if hb.UserAgent != "" {
		rec.UserAgent = hb.UserAgent
	}
	if hb.Name != "" {
		rec.Name = hb.Name
	}
	if hb.Email != "" {
		rec.Email = hb.Email
	}
}

// ListActive evicts expired records and returns the remaining ones ordered
// by LastSeen descending (most recently active first).
func (s *Store) ListActive() []Record {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked(now)

	out := make([]Record, 0, len(s.visitors))
	for _, rec := range s.visitors {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastSeen.Equal(out[j].LastSeen) {
			return out[i].VisitorID < out[j].VisitorID
		}
		return out[i].LastSeen.After(out[j].LastSeen)
	})
	return out
}

// Remove deletes the visitor's record. Removing an unknown ID is a no-op.
func (s *Store) Remove(visitorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.visitors, visitorID)
}

// Len returns the current number of records, including any not yet evicted.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visitors)
}

// evictLocked drops records whose last heartbeat is at least ttl old.
// Callers must hold s.mu.
func (s *Store) evictLocked(now time.Time) {
	cutoff := now.Add(-s.ttl)
	for id, rec := range s.visitors {
		if !rec.LastSeen.After(cutoff) {
			delete(s.visitors, id)
		}
	}
}

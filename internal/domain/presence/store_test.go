package presence

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestStore_HeartbeatUpsert(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	store := NewStore(WithClock(clock.Now))

	store.Heartbeat(Heartbeat{VisitorID: "v1", Page: "/courses", UserAgent: "ua"})
	first := clock.Now()

	clock.Advance(30 * time.Second)
	store.Heartbeat(Heartbeat{VisitorID: "v1", Page: "/courses/python"})

	active := store.ListActive()
	require.Len(t, active, 1)
	rec := active[0]
	assert.Equal(t, "v1", rec.VisitorID)
	assert.Equal(t, "/courses/python", rec.Page)
	assert.Equal(t, "ua", rec.UserAgent, "user agent survives a heartbeat that omits it")
	assert.Equal(t, first, rec.FirstSeen, "FirstSeen set once")
	assert.Equal(t, clock.Now(), rec.LastSeen)
}

func TestStore_HeartbeatIgnoresEmptyVisitorID(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.Heartbeat(Heartbeat{Page: "/home"})
	assert.Zero(t, store.Len())
}

func TestStore_ListActiveEvictionBoundary(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	store := NewStore(WithClock(clock.Now))

	store.Heartbeat(Heartbeat{VisitorID: "fresh", Page: "/a"})

	// 299s old: still active. 301s old: evicted. Exactly 300s counts as
	// expired too.
	clock.Advance(299 * time.Second)
	assert.Len(t, store.ListActive(), 1)

	clock.Advance(2 * time.Second)
	assert.Empty(t, store.ListActive())
	assert.Zero(t, store.Len(), "eviction removes the record, not just hides it")
}

func TestStore_ListActiveEvictsExactlyAtTTL(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	store := NewStore(WithClock(clock.Now))

	store.Heartbeat(Heartbeat{VisitorID: "v1", Page: "/a"})
	clock.Advance(DefaultTTL)
	assert.Empty(t, store.ListActive())
}

func TestStore_ListActiveOrdering(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	store := NewStore(WithClock(clock.Now))

	store.Heartbeat(Heartbeat{VisitorID: "oldest", Page: "/a"})
	clock.Advance(time.Minute)
	store.Heartbeat(Heartbeat{VisitorID: "middle", Page: "/b"})
	clock.Advance(time.Minute)
	store.Heartbeat(Heartbeat{VisitorID: "newest", Page: "/c"})

	active := store.ListActive()
	require.Len(t, active, 3)
	assert.Equal(t, "newest", active[0].VisitorID)
	assert.Equal(t, "middle", active[1].VisitorID)
	assert.Equal(t, "oldest", active[2].VisitorID)
}

func TestStore_HeartbeatAlsoEvicts(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	store := NewStore(WithClock(clock.Now))

	store.Heartbeat(Heartbeat{VisitorID: "stale", Page: "/a"})
	clock.Advance(DefaultTTL + time.Second)
	store.Heartbeat(Heartbeat{VisitorID: "live", Page: "/b"})

	assert.Equal(t, 1, store.Len())
}

func TestStore_RemoveIdempotent(t *testing.T) {
	t.Parallel()

	store := NewStore()
	store.Heartbeat(Heartbeat{VisitorID: "v1", Page: "/a"})

	store.Remove("v1")
	assert.Zero(t, store.Len())

	// Removing again, or removing an unknown ID, is a no-op.
	store.Remove("v1")
	store.Remove("never-seen")
	assert.Zero(t, store.Len())
}

func TestStore_ConcurrentHeartbeats(t *testing.T) {
	t.Parallel()

	store := NewStore()
	const visitors = 50
	const beats = 20

	var wg sync.WaitGroup
	for i := 0; i < visitors; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("visitor-%d", i)
			for j := 0; j < beats; j++ {
				store.Heartbeat(Heartbeat{VisitorID: id, Page: "/live"})
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, store.ListActive(), visitors)
}

func TestStore_CustomTTL(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	store := NewStore(WithClock(clock.Now), WithTTL(10*time.Second))

	store.Heartbeat(Heartbeat{VisitorID: "v1", Page: "/a"})
	clock.Advance(9 * time.Second)
	assert.Len(t, store.ListActive(), 1)
	clock.Advance(2 * time.Second)
	assert.Empty(t, store.ListActive())
}

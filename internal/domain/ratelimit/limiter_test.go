package ratelimit

import (
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

func TestLimiter_Sequence(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	l := New(3, time.Minute, WithClock(clock.Now))

	want := []bool{true, true, true, false}
	for i, allowed := range want {
		res := l.Check("user-1")
		assert.Equal(t, allowed, res.Allowed, "request %d", i+1)
	}
}

func TestLimiter_RemainingCountsDown(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	l := New(3, time.Minute, WithClock(clock.Now))

	assert.Equal(t, 2, l.Check("k").Remaining)
	assert.Equal(t, 1, l.Check("k").Remaining)
	assert.Equal(t, 0, l.Check("k").Remaining)

	res := l.Check("k")
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
}

func TestLimiter_WindowReset(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	l := New(2, time.Minute, WithClock(clock.Now))

	require.True(t, l.Check("k").Allowed)
	require.True(t, l.Check("k").Allowed)
	require.False(t, l.Check("k").Allowed)

	// At exactly the reset instant the old window still applies.
	clock.Advance(time.Minute)
	res := l.Check("k")
	assert.False(t, res.Allowed)
	assert.Equal(t, time.Duration(0), res.ResetIn)

	// One instant past the boundary a fresh window opens.
	clock.Advance(time.Millisecond)
	res = l.Check("k")
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Remaining)
	assert.Equal(t, time.Minute, res.ResetIn)
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	l := New(1, time.Minute)
	assert.True(t, l.Check("a").Allowed)
	assert.False(t, l.Check("a").Allowed)
	assert.True(t, l.Check("b").Allowed)
}

func TestLimiter_ResetInDecreases(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	l := New(5, time.Minute, WithClock(clock.Now))

	res := l.Check("k")
	assert.Equal(t, time.Minute, res.ResetIn)

	clock.Advance(40 * time.Second)
	res = l.Check("k")
	assert.Equal(t, 20*time.Second, res.ResetIn)
	assert.GreaterOrEqual(t, res.ResetIn, time.Duration(0))
}

func TestLimiter_Cleanup(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	l := New(3, time.Minute, WithClock(clock.Now))

	l.Check("old")
	clock.Advance(time.Minute + time.Second)
	l.Check("new")
	require.Equal(t, 2, l.Len())

	l.Cleanup()
	assert.Equal(t, 1, l.Len())

	// A cleaned key starts over.
	res := l.Check("old")
	assert.True(t, res.Allowed)
	assert.Equal(t, 2, res.Remaining)
}

func TestLimiter_ConcurrentChecksNeverExceedMax(t *testing.T) {
	t.Parallel()

	const max = 10
	const goroutines = 50
	l := New(max, time.Minute)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Check("shared").Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, max, allowed)
}

func TestLimiter_Allow(t *testing.T) {
	t.Parallel()

	l := New(1, time.Minute)
	assert.True(t, l.Allow("k"))
	assert.False(t, l.Allow("k"))
}

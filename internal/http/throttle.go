package httpx

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ThrottleOptions configures the per-client request throttle.
type ThrottleOptions struct {
	// RequestsPerSecond is the sustained rate allowed per client IP.
	RequestsPerSecond float64
	// Burst is the number of requests a client may send at once.
	Burst int
	// IdleTTL is how long an idle client entry is kept before cleanup.
	IdleTTL time.Duration
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Throttler applies a token-bucket limit per client IP. Entries for idle
// clients are pruned on a background interval.
type Throttler struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	rps     rate.Limit
	burst   int
	idleTTL time.Duration
}

// NewThrottler builds a Throttler and starts its cleanup loop. The loop
// runs for the life of the process.
func NewThrottler(opts ThrottleOptions) *Throttler {
	t := &Throttler{
		clients: make(map[string]*clientLimiter),
		rps:     rate.Limit(opts.RequestsPerSecond),
		burst:   opts.Burst,
		idleTTL: opts.IdleTTL,
	}
	if t.idleTTL <= 0 {
		t.idleTTL = 3 * time.Minute
	}
	go t.cleanupLoop()
	return t
}

func (t *Throttler) allow(ip string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.clients[ip]
	if !ok {
		entry = &clientLimiter{limiter: rate.NewLimiter(t.rps, t.burst)}
		t.clients[ip] = entry
	}
	entry.lastSeen = time.Now()
	return entry.limiter.Allow()
}

func (t *Throttler) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		t.mu.Lock()
		cutoff := time.Now().Add(-t.idleTTL)
		for ip, entry := range t.clients {
			if entry.lastSeen.Before(cutoff) {
				delete(t.clients, ip)
			}
		}
		t.mu.Unlock()
	}
}

// Middleware rejects requests over the per-client budget with 429.
func (t *Throttler) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !t.allow(ClientIP(r)) {
			WriteError(w, ErrorParams{
				Code:    http.StatusTooManyRequests,
				ErrCode: "rate_limited",
				Err:     errors.New("too many requests"),
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

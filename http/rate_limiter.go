package http

import (
	"math"
	"sync"
	"time"
)

const sweepInterval = 10 * time.Minute

type bucket struct {
	tokens  float64
	updated time.Time
}

// RateLimiter is a per-client token bucket holding at most limit tokens and
// refilling continuously at limit tokens per window.
type RateLimiter struct {
	mu       sync.Mutex
	limit    float64
	window   time.Duration
	buckets  map[string]*bucket
	done     chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		limit:   float64(limit),
		window:  window,
		buckets: make(map[string]*bucket),
		done:    make(chan struct{}),
		now:     time.Now,
	}
	go rl.sweepLoop()
	return rl
}

func (r *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep()
		case <-r.done:
			return
		}
	}
}

// sweep forgets clients idle for a full window; their buckets would be
// full again, which is the same as having none.
func (r *RateLimiter) sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for client, b := range r.buckets {
		if now.Sub(b.updated) >= r.window {
			delete(r.buckets, client)
		}
	}
}

func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.done) })
}

// Reserve takes a token for client. When none is left it reports how long
// until the next one.
func (r *RateLimiter) Reserve(client string) (bool, time.Duration) {
	if r.limit <= 0 {
		return false, r.window
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	b, ok := r.buckets[client]
	if !ok {
		b = &bucket{tokens: r.limit, updated: now}
		r.buckets[client] = b
	} else {
		elapsed := now.Sub(b.updated)
		b.tokens = math.Min(r.limit, b.tokens+r.limit*float64(elapsed)/float64(r.window))
		b.updated = now
	}

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}
	missing := 1 - b.tokens
	return false, time.Duration(missing / r.limit * float64(r.window))
}

func (r *RateLimiter) Allow(client string) bool {
	ok, _ := r.Reserve(client)
	return ok
}

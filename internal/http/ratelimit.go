package httpapi

import (
	"sync"
	"time"
)

// Buckets idle this long are dropped on the next sweep.
const bucketIdle = 10 * time.Minute

type bucket struct {
	tokens     float64
	lastRefill time.Time
}

type rateLimiter struct {
	mu        sync.Mutex
	rps       float64
	burst     int
	bkts      map[string]*bucket // key: ip
	now       func() time.Time
	lastSweep time.Time
}

// A non-positive rps disables limiting.
func newRateLimiter(rps float64, burst int) *rateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &rateLimiter{rps: rps, burst: burst, bkts: make(map[string]*bucket), now: time.Now}
}

func (rl *rateLimiter) Allow(key string) bool {
	if rl.rps <= 0 {
		return true
	}
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.sweep(now)
	bkt, ok := rl.bkts[key]
	if !ok {
		bkt = &bucket{tokens: float64(rl.burst), lastRefill: now}
		rl.bkts[key] = bkt
	}

	elapsed := now.Sub(bkt.lastRefill).Seconds()
	bkt.tokens = min(float64(rl.burst), bkt.tokens+elapsed*rl.rps)
	bkt.lastRefill = now

	if bkt.tokens >= 1 {
		bkt.tokens -= 1
		return true
	}
	return false
}

func (rl *rateLimiter) sweep(now time.Time) {
	if now.Sub(rl.lastSweep) < bucketIdle {
		return
	}
	rl.lastSweep = now
	for k, b := range rl.bkts {
		if now.Sub(b.lastRefill) >= bucketIdle {
			delete(rl.bkts, k)
		}
	}
}

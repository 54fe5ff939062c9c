package middleware

import (
	"net/http"
	"sync"
	"time"

	"warungpos/internal/apierror"

	"github.com/gin-gonic/gin"
)

// tokenBucket is a simple per-client bucket refilled at a fixed rate.
type tokenBucket struct {
	tokens     float64
	lastRefill time.Time
}

type rateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*tokenBucket
	rate     float64 // tokens per second
	capacity float64
}

func newRateLimiter(rate, capacity float64) *rateLimiter {
	rl := &rateLimiter{
		buckets:  make(map[string]*tokenBucket),
		rate:     rate,
		capacity: capacity,
	}
	go rl.purgeLoop()
	return rl
}

// purgeLoop drops buckets idle long enough to be full again, bounding memory
// under churn of client addresses.
func (rl *rateLimiter) purgeLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		idle := time.Duration(rl.capacity/rl.rate) * time.Second
		cutoff := time.Now().Add(-idle)
		rl.mu.Lock()
		for key, b := range rl.buckets {
			if b.lastRefill.Before(cutoff) {
				delete(rl.buckets, key)
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *rateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.buckets[key]
	if !ok {
		b = &tokenBucket{tokens: rl.capacity, lastRefill: now}
		rl.buckets[key] = b
	}

	b.tokens += now.Sub(b.lastRefill).Seconds() * rl.rate
	if b.tokens > rl.capacity {
		b.tokens = rl.capacity
	}
	b.lastRefill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// RateLimiter bounds general API traffic per client IP.
func RateLimiter() gin.HandlerFunc {
	rl := newRateLimiter(20, 40)
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("too many requests"))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter is much tighter than the general limiter; credential
// guessing gets expensive fast.
func LoginRateLimiter() gin.HandlerFunc {
	rl := newRateLimiter(0.2, 5)
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("too many login attempts, try again later"))
			return
		}
		c.Next()
	}
}

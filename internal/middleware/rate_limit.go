package middleware

import (
	"net/http"
	"sync"
	"time"

	"spincraft-tracker/internal/shared/apperror"
	"spincraft-tracker/internal/shared/response"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long a key keeps its bucket after its last request.
const limiterIdleTTL = 10 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// keyedLimiter hands out one token bucket per key (client IP or admin id).
type keyedLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	limit    rate.Limit
	burst    int
	lastScan time.Time
	now      func() time.Time
}

func newKeyedLimiter(r rate.Limit, b int) *keyedLimiter {
	return &keyedLimiter{
		buckets: make(map[string]*bucket),
		limit:   r,
		burst:   b,
		now:     time.Now,
	}
}

func (k *keyedLimiter) allow(key string) bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	if now.Sub(k.lastScan) > limiterIdleTTL {
		for id, bk := range k.buckets {
			if now.Sub(bk.lastSeen) > limiterIdleTTL {
				delete(k.buckets, id)
			}
		}
		k.lastScan = now
	}

	bk, ok := k.buckets[key]
	if !ok {
		bk = &bucket{limiter: rate.NewLimiter(k.limit, k.burst)}
		k.buckets[key] = bk
	}
	bk.lastSeen = now
	return bk.limiter.AllowN(now, 1)
}

func (k *keyedLimiter) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.buckets)
}

func rateLimit(r rate.Limit, b int, keyOf func(*gin.Context) string, message string) gin.HandlerFunc {
	limiter := newKeyedLimiter(r, b)
	return func(c *gin.Context) {
		key := keyOf(c)
		if key == "" {
			c.Next()
			return
		}
		if !limiter.allow(key) {
			response.Error(c, http.StatusTooManyRequests, apperror.CodeRateLimited, message, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimitByIP is used on the unauthenticated auth endpoints.
func RateLimitByIP(r rate.Limit, b int) gin.HandlerFunc {
	return rateLimit(r, b, func(c *gin.Context) string { return c.ClientIP() }, "Too many requests from this IP")
}

// RateLimitByUser limits per authenticated admin. Anonymous requests pass through.
func RateLimitByUser(r rate.Limit, b int) gin.HandlerFunc {
	return rateLimit(r, b, func(c *gin.Context) string { return c.GetString("admin_id") }, "Too many requests from this user")
}

package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"spincraft-tracker/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	idempotencyLockTTL  = 30 * time.Second
	idempotencyCacheTTL = 24 * time.Hour
)

// Idempotency replays the cached result of a POST carrying an Idempotency-Key header and
// rejects a concurrent duplicate while the first request is still running. The handler
// stores its result with CompleteIdempotency. Keys are scoped to the request path, so the
// same key sent to two different days does not collide.
func Idempotency(rdb *redis.Client) gin.HandlerFunc {
	log := zap.L().Named("middleware.idempotency")
	return func(c *gin.Context) {
		idempKey := c.GetHeader("Idempotency-Key")
		if idempKey == "" || c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		adminID := c.GetString("admin_id")
		cacheKey := fmt.Sprintf("idemp:%s:%s:%s", c.Request.URL.Path, adminID, idempKey)
		lockKey := cacheKey + ":lock"

		val, err := rdb.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			var cached any
			if json.Unmarshal([]byte(val), &cached) == nil {
				c.Header("Idempotent-Replay", "true")
				response.Success(c, http.StatusOK, cached, nil)
				c.Abort()
				return
			}
		} else if err != redis.Nil {
			log.Warn("idempotency cache read failed", zap.String("key", cacheKey), zap.Error(err))
		}

		// A short lock TTL frees the key if the process dies mid request.
		isNew, err := rdb.SetNX(c.Request.Context(), lockKey, "locked", idempotencyLockTTL).Result()
		if err != nil {
			log.Warn("idempotency lock failed", zap.String("key", lockKey), zap.Error(err))
			c.Next()
			return
		}

		if !isNew {
			response.Error(c, http.StatusConflict, "PROCESSING", "The same request is still being processed", nil)
			c.Abort()
			return
		}

		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		c.Next()
	}
}

// CompleteIdempotency caches data under the request's idempotency key (when success is
// true) and releases the lock. It is a no-op for requests without a key.
func CompleteIdempotency(c *gin.Context, rdb *redis.Client, data any, success bool) {
	if rdb == nil {
		return
	}
	ctx := c.Request.Context()

	if lockKey := c.GetString("idempotency_lock_key"); lockKey != "" {
		defer rdb.Del(ctx, lockKey)
	}

	cacheKey := c.GetString("idempotency_cache_key")
	if !success || cacheKey == "" {
		return
	}
	if payload, err := json.Marshal(data); err == nil {
		rdb.Set(ctx, cacheKey, payload, idempotencyCacheTTL)
	}
}

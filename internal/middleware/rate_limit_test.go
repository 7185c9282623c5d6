package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyedLimiter(t *testing.T) {
	clock := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	l := newKeyedLimiter(1, 1)
	l.now = func() time.Time { return clock }

	t.Run("keys have separate buckets", func(t *testing.T) {
		assert.True(t, l.allow("a1"))
		assert.False(t, l.allow("a1"))
		assert.True(t, l.allow("a2"))
		assert.Equal(t, 2, l.size())
	})

	t.Run("idle buckets are evicted", func(t *testing.T) {
		clock = clock.Add(limiterIdleTTL + time.Minute)
		assert.True(t, l.allow("a3"))
		assert.Equal(t, 1, l.size())
	})
}

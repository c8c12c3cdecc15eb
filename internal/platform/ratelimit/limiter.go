// Package ratelimit enforces a per-client, per-route request quota.
package ratelimit

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RouteLimiter allows limit requests per window for each client+route pair.
// Counters live in Redis so the quota holds across replicas; without Redis
// it degrades to per-process token buckets.
type RouteLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration

	mu     sync.Mutex
	local  map[string]*localVisitor
	nowish func() time.Time
}

type localVisitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRouteLimiter creates a limiter. rdb may be nil.
func NewRouteLimiter(rdb *redis.Client, limit int, window time.Duration) *RouteLimiter {
	if limit <= 0 {
		limit = 20
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RouteLimiter{
		rdb:    rdb,
		limit:  limit,
		window: window,
		local:  make(map[string]*localVisitor),
		nowish: time.Now,
	}
}

// Middleware returns the Gin middleware enforcing the quota.
// 上限超過時は429を返します。
func (l *RouteLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s:%s", c.ClientIP(), c.Request.Method, c.FullPath())
		if !l.allow(c.Request.Context(), key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}

// allow consumes one slot for key and reports whether the request may pass.
func (l *RouteLimiter) allow(ctx context.Context, key string) bool {
	if l.rdb == nil {
		return l.allowLocal(key)
	}

	// 固定ウィンドウ: 最初のINCRでウィンドウ分のTTLを設定する
	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		// Redis断ではプロセスローカルの割当にフォールバックする
		slog.Warn("rate limiter falling back to local counters", "error", err)
		return l.allowLocal(key)
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			slog.Warn("failed to set rate-limit TTL", "key", key, "error", err)
		}
	}
	return count <= int64(l.limit)
}

// allowLocal is the in-process fallback: a token bucket whose burst equals
// the full quota and whose refill rate spreads the quota over the window.
func (l *RouteLimiter) allowLocal(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.nowish()
	v, ok := l.local[key]
	if !ok {
		v = &localVisitor{
			limiter: rate.NewLimiter(rate.Limit(float64(l.limit)/l.window.Seconds()), l.limit),
		}
		l.local[key] = v
	}
	v.lastSeen = now

	// 古いエントリを掃除（訪問者マップが無限に育たないように）
	for k, s := range l.local {
		if now.Sub(s.lastSeen) > 3*l.window {
			delete(l.local, k)
		}
	}

	return v.limiter.Allow()
}

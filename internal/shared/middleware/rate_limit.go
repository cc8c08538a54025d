package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"marketplace-backend/internal/shared/response"
)

const visitorIdleTTL = 3 * time.Minute

// ipLimiter - token bucket per client IP
type ipLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*visitor
	rps       rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiter(rps float64, burst int, ttl time.Duration) *ipLimiter {
	return &ipLimiter{
		limiters: make(map[string]*visitor),
		rps:      rate.Limit(rps),
		burst:    burst,
		ttl:      ttl,
	}
}

func (l *ipLimiter) get(ip string, now time.Time) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	// quét visitor idle tối đa 1 lần mỗi ttl
	if now.Sub(l.lastSweep) >= l.ttl {
		for key, v := range l.limiters {
			if now.Sub(v.lastSeen) > l.ttl {
				delete(l.limiters, key)
			}
		}
		l.lastSweep = now
	}

	v, ok := l.limiters[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.limiters[ip] = v
	}
	v.lastSeen = now
	return v.limiter
}

func (l *ipLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.limiters)
}

// RateLimit - Giới hạn rps request/giây mỗi IP (burst cho phép vượt ngắn hạn).
// IP lấy từ c.ClientIP(): X-Forwarded-For chỉ được tin khi request đi qua
// proxy nằm trong engine.SetTrustedProxies. rps <= 0 tắt limiter.
func RateLimit(rps float64, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	l := newIPLimiter(rps, burst, visitorIdleTTL)
	return func(c *gin.Context) {
		if !l.get(c.ClientIP(), time.Now()).Allow() {
			c.Header("Retry-After", "1")
			response.Abort(c, http.StatusTooManyRequests, "Too many requests", "rate limit exceeded")
			return
		}
		c.Next()
	}
}

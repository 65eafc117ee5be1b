package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// limiterIdleTTL is how long a client's bucket survives without requests.
const limiterIdleTTL = 10 * time.Minute

// ipLimiters hands out one token bucket per client IP. Buckets idle for
// longer than ttl are dropped whenever a new client shows up.
type ipLimiters struct {
	mu       sync.Mutex
	limiters map[string]*clientLimiter
	rps      rate.Limit
	burst    int
	ttl      time.Duration
	now      func() time.Time
}

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newIPLimiters(rps rate.Limit, burst int) *ipLimiters {
	return &ipLimiters{
		limiters: make(map[string]*clientLimiter),
		rps:      rps,
		burst:    burst,
		ttl:      limiterIdleTTL,
		now:      time.Now,
	}
}

func (l *ipLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cl, ok := l.limiters[ip]
	if !ok {
		l.sweep(now)
		cl = &clientLimiter{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.limiters[ip] = cl
	}
	cl.lastSeen = now
	return cl.limiter
}

// sweep drops buckets idle since before now-ttl. Callers hold mu.
func (l *ipLimiters) sweep(now time.Time) {
	for ip, cl := range l.limiters {
		if now.Sub(cl.lastSeen) > l.ttl {
			delete(l.limiters, ip)
		}
	}
}

// RateLimiter limits each client IP to rps requests per second with the given burst.
//
// Behavior:
//   - Identifies clients by c.ClientIP().
//   - Forgets a client after limiterIdleTTL without requests.
//   - When the bucket is empty, responds 429 Too Many Requests with dto.ErrorResponse.
//
// Usage:
//
//	router.Use(middleware.RateLimiter(rate.Limit(1), 60))
func RateLimiter(rps rate.Limit, burst int) gin.HandlerFunc {
	store := newIPLimiters(rps, burst)
	return func(c *gin.Context) {
		if !store.get(c.ClientIP()).Allow() {
			AbortWithError(c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}

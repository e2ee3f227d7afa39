package providers

import (
	"net/http"
	"sync"
	"time"
	"vcheck/internal/structures"

	"golang.org/x/time/rate"
)

const (
	limiterIdleTTL   = 10 * time.Minute
	limiterPruneSize = 10000
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles callers by client address.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	limit   rate.Limit
	burst   int
	proxy   bool
	logger  Logger
	nowFn   func() time.Time
}

// NewRateLimitMiddleware returns a pass-through middleware when rate limiting is disabled.
func NewRateLimitMiddleware(conf *structures.Config, logger Logger) Middleware {
	if !conf.RateLimit.Enabled || conf.RateLimit.RPS <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	rl := NewRateLimiter(conf.RateLimit.RPS, conf.RateLimit.Burst, conf.Proxy, logger)
	logger.Infof(TypeApp, "Rate limit enabled: %.2f req/s, burst %d", conf.RateLimit.RPS, rl.burst)
	return rl.Middleware
}

func NewRateLimiter(rps float64, burst int, behindProxy bool, logger Logger) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(rps),
		burst:   burst,
		proxy:   behindProxy,
		logger:  logger,
		nowFn:   time.Now,
	}
}

func (rl *RateLimiter) Allow(addr string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.nowFn()
	c, ok := rl.clients[addr]
	if !ok {
		if len(rl.clients) >= limiterPruneSize {
			rl.prune(now)
		}
		c = &clientLimiter{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[addr] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// prune must be called with rl.mu held.
func (rl *RateLimiter) prune(now time.Time) {
	for addr, c := range rl.clients {
		if now.Sub(c.lastSeen) > limiterIdleTTL {
			delete(rl.clients, addr)
		}
	}
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		addr := ClientAddr(r, rl.proxy)
		if !rl.Allow(addr) {
			rl.logger.Debugf(GetLogTypeByRequestType(r.Method), "Rate limited %s", addr)
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"frontdesk/shared/constant"
	"frontdesk/transport/http/response"
)

// windowLimiter counts requests per client in fixed windows. The service
// runs as a single process, so the counters live in memory.
type windowLimiter struct {
	mu      sync.Mutex
	counts  map[string]int
	resetAt time.Time
}

func newWindowLimiter() *windowLimiter {
	return &windowLimiter{
		counts: make(map[string]int),
	}
}

func (l *windowLimiter) hit(key string, window time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if now.After(l.resetAt) {
		l.counts = make(map[string]int)
		l.resetAt = now.Add(window)
	}

	l.counts[key]++

	return l.counts[key]
}

func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !a.config.App.RateLimiter.Enable {
				next.ServeHTTP(w, r)

				return
			}

			maxReqs := a.config.App.RateLimiter.MaxRequests
			windowSecs := a.config.App.RateLimiter.WindowSeconds

			key := a.getClientIP(r) + "|" + a.getUA(r)
			count := a.limiter.hit(key, time.Duration(windowSecs)*time.Second)

			if count > maxReqs {
				response.WithRequestLimitExceeded(w)

				return
			}

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(maxReqs))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.Itoa(max(0, maxReqs-count)))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(windowSecs))

			next.ServeHTTP(w, r)
		})
	}
}

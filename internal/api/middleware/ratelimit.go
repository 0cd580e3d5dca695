package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-CleaningBooking/internal/api/handlers"
)

const msgTooManyRequests = "Too many requests, try again later"

// RateLimiter ограничитель запросов по IP клиента
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*visitor
	rps      rate.Limit
	burst    int
	ttl      time.Duration

	// Очистка идёт не чаще раза в evictEvery
	evictEvery time.Duration
	lastEvict  time.Time
	now        func() time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter создает ограничитель: rps запросов в секунду, burst подряд
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters:   make(map[string]*visitor),
		rps:        rate.Limit(rps),
		burst:      burst,
		ttl:        10 * time.Minute,
		evictEvery: time.Minute,
		lastEvict:  time.Now(),
		now:        time.Now,
	}
}

// Allow true, если запрос от ip укладывается в лимит
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	v, ok := rl.limiters[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.limiters[ip] = v
	}
	v.lastSeen = now

	rl.evict(now)
	return v.limiter.AllowN(now, 1)
}

// evict удаляет давно не приходивших клиентов; вызывается под mu
func (rl *RateLimiter) evict(now time.Time) {
	if now.Sub(rl.lastEvict) < rl.evictEvery {
		return
	}
	rl.lastEvict = now
	for ip, v := range rl.limiters {
		if now.Sub(v.lastSeen) > rl.ttl {
			delete(rl.limiters, ip)
		}
	}
}

// RateLimit отвечает 429 на запросы сверх лимита
func RateLimit(rl *RateLimiter, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			if !rl.Allow(ip) {
				logger.Warn("RateLimit: %s %s - limit exceeded for ip=%s", r.Method, r.URL.Path, ip)
				handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

package middleware

import (
	"net"
	"net/http"
	"sync"

	myErr "vehiql-main/internal/types/errors"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter - token bucket на каждого клиента (по сессии, иначе по IP)
type RateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
	Logger   *zap.SugaredLogger
}

func NewRateLimiter(perSecond float64, burst int, l *zap.SugaredLogger) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		Logger:   l,
	}
}

func (rl *RateLimiter) limiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	lim, ok := rl.limiters[key]
	if !ok {
		lim = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[key] = lim
	}
	return lim
}

func clientKey(r *http.Request) string {
	if sess, ok := GetSessionFromContext(r.Context()); ok {
		return "user:" + sess.UserID
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "ip:" + r.RemoteAddr
	}
	return "ip:" + host
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)
		if !rl.limiter(key).Allow() {
			rl.Logger.Warnf("rate limit exceeded for %s", key)
			myErr.SendErrorTo(w, myErr.ErrRateLimited, http.StatusTooManyRequests, rl.Logger)
			return
		}
		next.ServeHTTP(w, r)
	})
}

package app

import (
	"net/http"
	"sync"
	"time"

	"tailspin/internal/respond"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// SecurityHeaders adds the standard hardening headers to every response.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		h.Set("Content-Security-Policy", "default-src 'self'")
		c.Next()
	}
}

type ipLimiters struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	rate     rate.Limit
	burst    int
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit limits each client IP to limit requests per window.
// Stale per-IP entries are dropped by a background sweep. The sweep
// goroutine has no stop signal and lives for the rest of the process;
// construct the middleware once per router.
func RateLimit(limit int, window time.Duration) gin.HandlerFunc {
	l := &ipLimiters{
		limiters: make(map[string]*ipLimiter),
		rate:     rate.Every(window / time.Duration(limit)),
		burst:    limit,
	}
	go l.cleanup(window)

	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			respond.AbortError(c, http.StatusTooManyRequests, "Too many requests")
			return
		}
		c.Next()
	}
}

func (l *ipLimiters) allow(ip string) bool {
	l.mu.Lock()
	v, ok := l.limiters[ip]
	if !ok {
		v = &ipLimiter{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[ip] = v
	}
	v.lastSeen = time.Now()
	l.mu.Unlock()
	return v.limiter.Allow()
}

func (l *ipLimiters) cleanup(window time.Duration) {
	ticker := time.NewTicker(window)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-2 * window)
		l.mu.Lock()
		for ip, v := range l.limiters {
			if v.lastSeen.Before(cutoff) {
				delete(l.limiters, ip)
			}
		}
		l.mu.Unlock()
	}
}

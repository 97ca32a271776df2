package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// RateLimiter implements a simple in-memory windowed rate limiter keyed
// by token subject and by client IP.
type RateLimiter struct {
	subjectLimits map[string]*windowLimit
	ipLimits      map[string]*windowLimit
	mu            sync.RWMutex

	subjectMaxRequests int
	ipMaxRequests      int
	window             time.Duration
}

type windowLimit struct {
	requests  int
	resetTime time.Time
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter(subjectMaxRequests, ipMaxRequests int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		subjectLimits:      make(map[string]*windowLimit),
		ipLimits:           make(map[string]*windowLimit),
		subjectMaxRequests: subjectMaxRequests,
		ipMaxRequests:      ipMaxRequests,
		window:             window,
	}

	// Start cleanup goroutine
	go rl.cleanup()

	return rl
}

// Limit is the HTTP middleware: IP limit first, then the per-subject
// limit when the request is authenticated.
func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.CheckIPLimit(clientIP(r)) {
			http.Error(w, `{"error":"rate limit exceeded"}`, http.StatusTooManyRequests)
			return
		}

		if claims := ClaimsFromContext(r.Context()); claims != nil {
			if !rl.CheckSubjectLimit(claims.Subject) {
				http.Error(w, `{"error":"rate limit exceeded"}`, http.StatusTooManyRequests)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// CheckSubjectLimit checks if a token subject has exceeded its limit
func (rl *RateLimiter) CheckSubjectLimit(subject string) bool {
	return rl.check(rl.subjectLimits, subject, rl.subjectMaxRequests)
}

// CheckIPLimit checks if an IP has exceeded its limit
func (rl *RateLimiter) CheckIPLimit(ip string) bool {
	return rl.check(rl.ipLimits, ip, rl.ipMaxRequests)
}

func (rl *RateLimiter) check(limits map[string]*windowLimit, key string, maxRequests int) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()

	limit, exists := limits[key]
	if !exists || now.After(limit.resetTime) {
		limits[key] = &windowLimit{
			requests:  1,
			resetTime: now.Add(rl.window),
		}
		return true
	}

	if limit.requests >= maxRequests {
		return false
	}

	limit.requests++
	return true
}

// cleanup removes expired entries
func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()

		for key, limit := range rl.subjectLimits {
			if now.After(limit.resetTime) {
				delete(rl.subjectLimits, key)
			}
		}

		for key, limit := range rl.ipLimits {
			if now.After(limit.resetTime) {
				delete(rl.ipLimits, key)
			}
		}

		rl.mu.Unlock()
	}
}

// Reset clears all rate limits (useful for testing)
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.subjectLimits = make(map[string]*windowLimit)
	rl.ipLimits = make(map[string]*windowLimit)
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

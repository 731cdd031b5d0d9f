package middleware

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// visitor tracks a rate limiter per client IP.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// visitorStore manages per-IP rate limiters with eviction of stale entries.
type visitorStore struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	rps      int
	burst    int
	ttl      time.Duration
	nowFunc  func() time.Time // injectable clock for testing
}

func newVisitorStore(rps, burst int, ttl time.Duration) *visitorStore {
	s := &visitorStore{
		visitors: make(map[string]*visitor),
		rps:      rps,
		burst:    burst,
		ttl:      ttl,
		nowFunc:  time.Now,
	}
	go s.cleanupLoop()
	return s
}

// getVisitor returns (or creates) a rate limiter for the given IP and
// refreshes its lastSeen timestamp.
func (s *visitorStore) getVisitor(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, exists := s.visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(rate.Limit(s.rps), s.burst)
		s.visitors[ip] = &visitor{limiter: limiter, lastSeen: s.nowFunc()}
		return limiter
	}
	v.lastSeen = s.nowFunc()
	return v.limiter
}

func (s *visitorStore) cleanupLoop() {
	ticker := time.NewTicker(s.ttl)
	defer ticker.Stop()
	for range ticker.C {
		s.cleanup()
	}
}

func (s *visitorStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFunc()
	for ip, v := range s.visitors {
		if now.Sub(v.lastSeen) > s.ttl {
			delete(s.visitors, ip)
		}
	}
}

// RateLimit returns middleware that applies a per-client-IP token bucket.
// Requests over the limit receive 429 Too Many Requests.
func RateLimit(rps, burst int, l *slog.Logger) func(http.Handler) http.Handler {
	store := newVisitorStore(rps, burst, 3*time.Minute)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}

			if !store.getVisitor(ip).Allow() {
				l.WarnContext(r.Context(), "rate limit exceeded",
					slog.String("ip", ip),
					slog.String("path", r.URL.Path),
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"code":    "RATE_LIMITED",
					"message": "too many requests, slow down",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

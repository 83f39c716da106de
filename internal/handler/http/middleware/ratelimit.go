package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/cmlabs-hris/face-attendance-backend-go/internal/handler/http/response"
	"golang.org/x/time/rate"
)

type stationLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles submissions per remote address. Recognition kiosks
// can emit several frames per second; the limiter keeps one misbehaving
// station from flooding the matcher.
type RateLimiter struct {
	mu       sync.Mutex
	stations map[string]*stationLimiter
	rate     rate.Limit
	burst    int
}

func NewRateLimiter(r rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		stations: make(map[string]*stationLimiter),
		rate:     r,
		burst:    burst,
	}
}

func (rl *RateLimiter) limiterFor(addr string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	s, ok := rl.stations[addr]
	if !ok {
		s = &stationLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.stations[addr] = s
	}
	s.lastSeen = time.Now()
	return s.limiter
}

// SweepIdle drops limiter state for stations that have been silent longer
// than maxIdle. Returns the number of entries removed.
func (rl *RateLimiter) SweepIdle(maxIdle time.Duration) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	removed := 0
	for addr, s := range rl.stations {
		if s.lastSeen.Before(cutoff) {
			delete(rl.stations, addr)
			removed++
		}
	}
	return removed
}

func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}

		if !rl.limiterFor(host).Allow() {
			response.TooManyRequests(w, "Too many requests from this station")
			return
		}

		next.ServeHTTP(w, r)
	})
}

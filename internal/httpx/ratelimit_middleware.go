package httpx

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	idleClientTTL = 5 * time.Minute
	maxClients    = 10000
)

type clientLimiter struct {
	*rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware throttles each client address with its own token bucket.
// Buckets idle for longer than idleClientTTL are dropped during the next sweep,
// and at most maxClients buckets are kept.
type RateLimitMiddleware struct {
	mu         sync.Mutex
	clients    map[string]*clientLimiter
	limit      rate.Limit
	burst      int
	trustProxy bool
	maxClients int
	lastSweep  time.Time
	now        func() time.Time
}

// NewRateLimitMiddleware keys clients by remote address. With trustProxy set,
// the address appended to X-Forwarded-For by the proxy in front is used
// instead; leave it off when clients connect directly, as they control that
// header.
func NewRateLimitMiddleware(rps float64, burst int, trustProxy bool) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		clients:    make(map[string]*clientLimiter),
		limit:      rate.Limit(rps),
		burst:      burst,
		trustProxy: trustProxy,
		maxClients: maxClients,
		lastSweep:  time.Now(),
		now:        time.Now,
	}
}

func (rl *RateLimitMiddleware) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) > idleClientTTL {
		rl.sweep(now)
	}

	c, ok := rl.clients[key]
	if !ok {
		if len(rl.clients) >= rl.maxClients {
			rl.sweep(now)
		}
		if len(rl.clients) >= rl.maxClients {
			rl.evictOldest()
		}
		c = &clientLimiter{Limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = c
	}
	c.lastSeen = now
	return c.AllowN(now, 1)
}

func (rl *RateLimitMiddleware) sweep(now time.Time) {
	for k, c := range rl.clients {
		if now.Sub(c.lastSeen) > idleClientTTL {
			delete(rl.clients, k)
		}
	}
	rl.lastSweep = now
}

func (rl *RateLimitMiddleware) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
	)
	for k, c := range rl.clients {
		if oldestKey == "" || c.lastSeen.Before(oldest) {
			oldestKey, oldest = k, c.lastSeen
		}
	}
	delete(rl.clients, oldestKey)
}

// clientKey is the remote host without its port. Behind a trusted proxy it is
// the last X-Forwarded-For hop, the one the proxy itself appended.
func (rl *RateLimitMiddleware) clientKey(r *http.Request) string {
	if rl.trustProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			hops := strings.Split(fwd, ",")
			if last := strings.TrimSpace(hops[len(hops)-1]); last != "" {
				return last
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (rl *RateLimitMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rl.allow(rl.clientKey(r)) {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Retry-After", "1")
		if WantsJSON(r) {
			JSONError(w, r, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Too many requests", nil, nil)
			return
		}
		http.Error(w, "Too many requests", http.StatusTooManyRequests)
	})
}

package main

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

func (app *Application) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("panic: %v", rec)
				}
				w.Header().Set("Connection", "close")
				app.Http.ServerError(w, r, err, "")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

const (
	limiterSweepInterval = 5 * time.Minute
	limiterMaxIdle       = 5 * time.Minute
)

type rateClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// rateClients holds one token bucket per client IP.
type rateClients struct {
	mu      sync.Mutex
	rps     rate.Limit
	burst   int
	clients map[string]*rateClient
}

func newRateClients(rps float64, burst int) *rateClients {
	return &rateClients{
		rps:     rate.Limit(rps),
		burst:   burst,
		clients: make(map[string]*rateClient),
	}
}

func (c *rateClients) allow(ip string, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	client, ok := c.clients[ip]
	if !ok {
		client = &rateClient{limiter: rate.NewLimiter(c.rps, c.burst)}
		c.clients[ip] = client
	}
	client.lastSeen = now
	return client.limiter.AllowN(now, 1)
}

// evictIdle forgets clients not seen for longer than maxIdle and returns how
// many are left.
func (c *rateClients) evictIdle(now time.Time, maxIdle time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	for ip, client := range c.clients {
		if now.Sub(client.lastSeen) > maxIdle {
			delete(c.clients, ip)
		}
	}
	return len(c.clients)
}

// sweep evicts idle clients every interval until done is closed.
func (c *rateClients) sweep(done <-chan struct{}, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case now := <-ticker.C:
			c.evictIdle(now, maxIdle)
		}
	}
}

func (app *Application) RateLimiter(next http.Handler) http.Handler {
	const op = "middlewares.RateLimiter"
	log := app.log.With("op", op)
	if !app.cfg.Limiter.Enabled {
		return next
	}
	clients := newRateClients(app.cfg.Limiter.Rps, app.cfg.Limiter.Burst)
	go clients.sweep(app.done, limiterSweepInterval, limiterMaxIdle)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			app.Http.ServerError(w, r, err, "")
			return
		}
		if !clients.allow(ip, time.Now()) {
			log.Warn("rate limit exceeded", "ip", ip)
			app.Http.Response(
				w, r,
				envelop{"error": "rate limit exceeded"},
				"Can't process request see an error below.",
				http.StatusTooManyRequests,
			)
			return
		}
		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"sync"
	"time"

	"finance-ledger/internal/errors"
	"finance-ledger/internal/handlers"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const clientIdleTimeout = 3 * time.Minute

var (
	clientsMu sync.RWMutex
	clients   = make(map[string]*clientLimiter)

	limiterRate  = 5
	limiterBurst = 10
)

// RateLimiter throttles requests per client IP using a token bucket.
// Idle clients are pruned in the background so the map stays bounded.
func RateLimiter() echo.MiddlewareFunc {
	go pruneIdleClients()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiterFor(clientIP(c)).Allow() {
				return handlers.SendError(c, errors.SystemRateLimitExceeded)
			}
			return next(c)
		}
	}
}

// RateLimiterWithConfig overrides the default rate and burst before
// building the middleware.
func RateLimiterWithConfig(rps int, burst int) echo.MiddlewareFunc {
	limiterRate = rps
	limiterBurst = burst

	return RateLimiter()
}

func limiterFor(ip string) *rate.Limiter {
	clientsMu.Lock()
	defer clientsMu.Unlock()

	if cl, ok := clients[ip]; ok {
		cl.lastSeen = time.Now()
		return cl.limiter
	}

	cl := &clientLimiter{
		limiter:  rate.NewLimiter(rate.Limit(limiterRate), limiterBurst),
		lastSeen: time.Now(),
	}
	clients[ip] = cl
	return cl.limiter
}

// clientIP prefers proxy-set headers over the socket address.
func clientIP(c echo.Context) string {
	if ip := c.Request().Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := c.Request().Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return c.RealIP()
}

func pruneIdleClients() {
	for {
		time.Sleep(time.Minute)

		clientsMu.Lock()
		for ip, cl := range clients {
			if time.Since(cl.lastSeen) > clientIdleTimeout {
				delete(clients, ip)
			}
		}
		clientsMu.Unlock()
	}
}

package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/portfoli/internal/domain/dto"
	"github.com/guttosm/portfoli/internal/logger"
)

// RequestLogger logs one line per request once it has been handled.
//
// Fields: method, path, route (the matched pattern), status, latency_ms,
// client_ip, and request_id when RequestID runs first. 5xx responses are
// logged at error, 4xx at warn, everything else at info.
//
// Example log output:
//
//	{"level":"info","request_id":"123e4567-e89b-12d3-a456-426614174000","method":"GET","path":"/api/v1/portfolios","route":"/api/v1/portfolios","status":200,"latency_ms":3,"message":"http_request"}
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		method := c.Request.Method
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()
		rid, _ := c.Get(RequestIDKey)

		log := logger.L()
		ev := log.Info()
		switch {
		case status >= http.StatusInternalServerError:
			ev = log.Error()
		case status >= http.StatusBadRequest:
			ev = log.Warn()
		}
		ev.Str("request_id", toString(rid)).
			Str("method", method).
			Str("path", path).
			Str("route", c.FullPath()).
			Int("status", status).
			Int64("latency_ms", latency.Milliseconds()).
			Str("client_ip", c.ClientIP()).
			Msg("http_request")
	}
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// client is one caller's fixed window.
type client struct {
	windowStart time.Time
	count       int
}

type rateLimiter struct {
	mu        sync.Mutex
	clients   map[string]*client
	limit     int
	window    time.Duration
	lastSweep time.Time
}

// RateLimiter allows at most limit requests per client IP in each window and
// answers 429 beyond that. A non-positive limit disables it.
//
// State is per process; several replicas each enforce their own budget.
//
// Response when limit exceeded:
//
//	HTTP/1.1 429 Too Many Requests
//	Retry-After: 42
//	{"message":"rate limit exceeded", ...}
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	if limit <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	rl := &rateLimiter{clients: make(map[string]*client), limit: limit, window: window}
	return rl.handle
}

func (rl *rateLimiter) handle(c *gin.Context) {
	retryAfter, ok := rl.allow(c.ClientIP(), time.Now())
	if !ok {
		c.Header("Retry-After", formatSeconds(retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("rate limit exceeded", nil))
		return
	}
	c.Next()
}

// allow counts a request and reports whether it fits in the caller's current
// window, and if not, how long until the window resets.
func (rl *rateLimiter) allow(ip string, now time.Time) (time.Duration, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) > rl.window {
		for k, cl := range rl.clients {
			if now.Sub(cl.windowStart) > rl.window {
				delete(rl.clients, k)
			}
		}
		rl.lastSweep = now
	}

	cl, ok := rl.clients[ip]
	if !ok || now.Sub(cl.windowStart) > rl.window {
		rl.clients[ip] = &client{windowStart: now, count: 1}
		return 0, true
	}
	cl.count++
	if cl.count > rl.limit {
		return cl.windowStart.Add(rl.window).Sub(now), false
	}
	return 0, true
}

func formatSeconds(d time.Duration) string {
	s := int64(d / time.Second)
	if d%time.Second != 0 {
		s++
	}
	if s < 1 {
		s = 1
	}
	return strconv.FormatInt(s, 10)
}

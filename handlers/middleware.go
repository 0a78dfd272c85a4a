package handlers

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"fitness-ai-assistant/logging"
	"fitness-ai-assistant/metrics"
)

const (
	requestIDHeader = "X-Request-ID"
	loggerKey       = "logger"
)

// RequestID tags every request with an ID, reusing the caller's when given
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Set(loggerKey, logging.With("request_id", id))
		c.Next()
	}
}

// RequestLogger logs one line per request and records HTTP metrics
func RequestLogger(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := c.Writer.Status()
		latency := time.Since(start)

		m.RecordHTTPRequest(c.Request.Method, path, strconv.Itoa(status), latency)
		requestLogger(c).Infow("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

// limiterTTL is how long an idle client's bucket is kept
const limiterTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP. Buckets idle for longer
// than the TTL are dropped on a later access.
type RateLimiter struct {
	rps     rate.Limit
	burst   int
	ttl     time.Duration
	metrics *metrics.Metrics
	now     func() time.Time

	mu        sync.Mutex
	visitors  map[string]*visitor
	lastSweep time.Time
}

// NewRateLimiter allows rps requests per second per client with the given burst
func NewRateLimiter(rps float64, burst int, m *metrics.Metrics) *RateLimiter {
	return &RateLimiter{
		rps:       rate.Limit(rps),
		burst:     burst,
		ttl:       limiterTTL,
		metrics:   m,
		now:       time.Now,
		visitors:  make(map[string]*visitor),
		lastSweep: time.Now(),
	}
}

func (r *RateLimiter) limiter(key string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if now.Sub(r.lastSweep) >= r.ttl {
		r.cleanupStale(now)
		r.lastSweep = now
	}

	v, ok := r.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(r.rps, r.burst)}
		r.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter
}

// cleanupStale removes buckets not used within the TTL. Caller holds mu.
func (r *RateLimiter) cleanupStale(now time.Time) {
	for key, v := range r.visitors {
		if now.Sub(v.lastSeen) > r.ttl {
			delete(r.visitors, key)
		}
	}
}

// Middleware rejects requests over the limit with 429
func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !r.limiter(c.ClientIP()).Allow() {
			r.metrics.RecordRateLimited()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, slow down"})
			return
		}
		c.Next()
	}
}

func requestLogger(c *gin.Context) *zap.SugaredLogger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(*zap.SugaredLogger); ok {
			return l
		}
	}
	return logging.L()
}

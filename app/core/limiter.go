package core

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/dkg-node/dkg-plugins/app/response"
	"github.com/dkg-node/dkg-plugins/pkg/errors"
	"github.com/dkg-node/dkg-plugins/pkg/i18n"
)

type LimitConfig struct {
	Limit int
	Every time.Duration
}

type LimitOption func(l *LimitConfig)

func WithLimit(limit int) LimitOption {
	return func(l *LimitConfig) {
		l.Limit = limit
	}
}

func WithRange(r time.Duration) LimitOption {
	return func(l *LimitConfig) {
		l.Every = r
	}
}

// Limiter keeps one token bucket per key.
type Limiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewLimiter() *Limiter {
	return &Limiter{
		limiters: make(map[string]*rate.Limiter),
	}
}

// Use returns the bucket for key, creating it on first use. A bucket refills
// Limit tokens every Every (a minute by default).
func (l *Limiter) Use(key string, opts ...LimitOption) *rate.Limiter {
	cfg := &LimitConfig{
		Limit: 60,
		Every: time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	lim, exist := l.limiters[key]
	if !exist {
		lim = rate.NewLimiter(rate.Every(cfg.Every/time.Duration(cfg.Limit)), cfg.Limit)
		l.limiters[key] = lim
	}
	return lim
}

// UseLimiter rejects requests with 429 once a client exceeds perMinute calls
// of operation. perMinute <= 0 turns the limit off.
func (s *Core) UseLimiter(operation string, perMinute int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if perMinute <= 0 {
			return
		}
		if !s.limiter.Use(operation+":"+c.ClientIP(), WithLimit(perMinute)).Allow() {
			response.APIError(c, errors.New("core.UseLimiter", i18n.ERROR_TOO_MANY_REQUESTS, nil).Code(http.StatusTooManyRequests))
			return
		}
	}
}

package dkg

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// ErrNodeUnavailable is returned without contacting the node while the
// circuit breaker is open.
var ErrNodeUnavailable = errors.New("DKG node is temporarily unavailable, try again later")

func newBreaker(cfg Config) *gobreaker.CircuitBreaker {
	if cfg.BreakerFailures == 0 {
		return nil
	}
	timeout := cfg.BreakerTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "dkg-node",
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		IsSuccessful: func(err error) bool {
			return !nodeUnhealthy(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("dkg circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})
}

// nodeUnhealthy reports whether err says something about the node itself
// rather than about the request. Rejected requests and cancelled callers do
// not count against the node.
func nodeUnhealthy(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.StatusCode >= 500
	}
	return true
}

func (c *HTTPClient) guarded(fn func() (any, error)) (any, error) {
	if c.breaker == nil {
		return fn()
	}
	res, err := c.breaker.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, ErrNodeUnavailable
	}
	return res, err
}

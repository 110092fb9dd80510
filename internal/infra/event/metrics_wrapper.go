package event

import (
	"context"
	"errors"
	"time"

	"github.com/origa008/zerodriveless-sub001/pkg/metrics"
	"github.com/sony/gobreaker"
)

// WrapResilientConsumer bounds each call with timeout, trips cb on repeated failures and
// records the outcome.
func WrapResilientConsumer(
	m metrics.Metrics,
	handlerName string,
	timeout time.Duration,
	cb *gobreaker.CircuitBreaker,
	next MessageHandler,
) MessageHandler {
	return func(ctx context.Context, msg []byte, headers map[string]interface{}) error {
		start := time.Now()

		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		_, err := cb.Execute(func() (interface{}, error) {
			return nil, next(ctx, msg, headers)
		})

		switch {
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			m.IncEventsProcessed(handlerName, "rejected")
		case err != nil:
			m.IncEventsProcessed(handlerName, "error")
		default:
			m.IncEventsProcessed(handlerName, "success")
		}
		m.RecordUseCaseExecution(handlerName, err == nil, time.Since(start))

		return err
	}
}

// NewCircuitBreaker opens after five consecutive failures and half-opens again after 30s.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
}

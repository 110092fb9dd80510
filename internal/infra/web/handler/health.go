package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/hellofresh/health-go/v5"
	healthRabbit "github.com/hellofresh/health-go/v5/checks/rabbitmq"
)

// Pinger is satisfied by *sqlx.DB and storage.RedisAdapter.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PingFunc adapts a plain ping function such as (*redis.Client).Ping(ctx).Err.
type PingFunc func(ctx context.Context) error

func (f PingFunc) PingContext(ctx context.Context) error { return f(ctx) }

type healthOptions struct {
	version string
	checks  []*health.Config
}

type HealthOption func(*healthOptions)

func WithVersion(v string) HealthOption {
	return func(o *healthOptions) { o.version = v }
}

func WithPostgres(db Pinger) HealthOption {
	return withPing("postgres", 5*time.Second, db)
}

func WithRedis(rdb Pinger) HealthOption {
	return withPing("redis", 3*time.Second, rdb)
}

func withPing(name string, timeout time.Duration, p Pinger) HealthOption {
	return func(o *healthOptions) {
		if p == nil {
			return
		}
		o.checks = append(o.checks, &health.Config{
			Name:      name,
			Timeout:   timeout,
			SkipOnErr: false,
			Check:     p.PingContext,
		})
	}
}

func WithRabbitMQ(dsn string) HealthOption {
	return func(o *healthOptions) {
		if dsn == "" {
			return
		}
		o.checks = append(o.checks, &health.Config{
			Name:      "rabbitmq",
			Timeout:   3 * time.Second,
			SkipOnErr: true,
			Check: healthRabbit.New(healthRabbit.Config{
				DSN: dsn,
			}),
		})
	}
}

func NewHealthHandler(serviceName string, opts ...HealthOption) (http.Handler, error) {
	options := &healthOptions{
		version: "1.0.0",
		checks:  make([]*health.Config, 0),
	}

	for _, opt := range opts {
		opt(options)
	}

	h, err := health.New(health.WithComponent(health.Component{
		Name:    serviceName,
		Version: options.version,
	}))
	if err != nil {
		return nil, err
	}

	for _, check := range options.checks {
		if err := h.Register(*check); err != nil {
			return nil, err
		}
	}

	return h.Handler(), nil
}

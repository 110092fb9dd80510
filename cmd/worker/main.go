package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/sync/errgroup"

	"github.com/origa008/zerodriveless-sub001/configs"
	"github.com/origa008/zerodriveless-sub001/internal/application/usecase/location"
	"github.com/origa008/zerodriveless-sub001/internal/infra/database"
	"github.com/origa008/zerodriveless-sub001/internal/infra/event"
	"github.com/origa008/zerodriveless-sub001/internal/infra/storage"
	"github.com/origa008/zerodriveless-sub001/pkg/logger"
	"github.com/origa008/zerodriveless-sub001/pkg/metrics"
	"github.com/origa008/zerodriveless-sub001/pkg/otel"
)

const handlerName = "location_indexer"

func main() {
	cfg, err := configs.LoadConfig(".")
	if err != nil {
		panic(err)
	}

	log := logger.NewLogger(cfg.ServiceName+"-worker", cfg.IsProduction())
	if err := run(cfg, log); err != nil {
		log.Error(context.Background(), "Worker stopped with error", logger.WithError(err))
		os.Exit(1)
	}
}

func run(cfg *configs.Conf, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := otel.InitProvider(ctx, otel.Config{
		ServiceName:   cfg.ServiceName + "-worker",
		Environment:   cfg.Environment,
		CollectorAddr: cfg.OtelCollectorAddr,
		SampleRatio:   cfg.OtelSampleRatio,
	})
	if err != nil {
		return err
	}
	defer shutdownTracer()

	rdb, err := storage.NewRedisClient(ctx, storage.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	reg := prometheus.NewRegistry()
	m := metrics.NewPrometheusMetrics(reg, cfg.ServiceName)

	var h event.MessageHandler = event.NewLocationIndexHandler(database.NewRedisLocationRepository(rdb, log), log)
	h = event.WrapResilientConsumer(m, handlerName, 5*time.Second, event.NewCircuitBreaker(handlerName), h)
	h = event.WrapExponentialBackoff(log, m, handlerName, 3, 200*time.Millisecond, h)
	h = event.WrapIdempotency(log, m, storage.NewRedisAdapter(rdb, "worker:"), handlerName, cfg.IdempotencyTTL, h)

	consumer := event.NewConsumer(conn, cfg.AMQPExchange, cfg.AMQPQueue, location.EventLocationUpdated, h, log)
	consumer.Prefetch = cfg.AMQPPrefetch

	metricsServer := &http.Server{
		Addr:              ":" + cfg.MetricsPort,
		Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return consumer.Start(gctx)
	})
	g.Go(func() error {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return metricsServer.Shutdown(shutCtx)
	})

	log.Info(ctx, "Worker started", logger.String("queue", cfg.AMQPQueue))
	return g.Wait()
}

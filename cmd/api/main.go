package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/origa008/zerodriveless-sub001/configs"
	"github.com/origa008/zerodriveless-sub001/internal/application/usecase/location"
	"github.com/origa008/zerodriveless-sub001/internal/application/usecase/post"
	"github.com/origa008/zerodriveless-sub001/internal/application/usecase/referral"
	"github.com/origa008/zerodriveless-sub001/internal/application/usecase/ride"
	"github.com/origa008/zerodriveless-sub001/internal/infra/database"
	"github.com/origa008/zerodriveless-sub001/internal/infra/event"
	"github.com/origa008/zerodriveless-sub001/internal/infra/storage"
	"github.com/origa008/zerodriveless-sub001/internal/infra/web"
	"github.com/origa008/zerodriveless-sub001/internal/infra/web/handler"
	"github.com/origa008/zerodriveless-sub001/internal/infra/web/middleware"
	"github.com/origa008/zerodriveless-sub001/pkg/logger"
	"github.com/origa008/zerodriveless-sub001/pkg/metrics"
	"github.com/origa008/zerodriveless-sub001/pkg/otel"
)

const version = "1.0.0"

func main() {
	cfg, err := configs.LoadConfig(".")
	if err != nil {
		panic(err)
	}

	log := logger.NewLogger(cfg.ServiceName+"-api", cfg.IsProduction())
	if err := run(cfg, log); err != nil {
		log.Error(context.Background(), "API stopped with error", logger.WithError(err))
		os.Exit(1)
	}
}

func run(cfg *configs.Conf, log logger.Logger) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := otel.InitProvider(ctx, otel.Config{
		ServiceName:    cfg.ServiceName + "-api",
		ServiceVersion: version,
		Environment:    cfg.Environment,
		CollectorAddr:  cfg.OtelCollectorAddr,
		SampleRatio:    cfg.OtelSampleRatio,
	})
	if err != nil {
		return err
	}
	defer shutdownTracer()

	if err := database.Migrate(cfg.DSN()); err != nil {
		return err
	}
	db, err := database.NewPostgres(ctx, cfg.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

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
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	if err := event.DeclareExchange(ch, cfg.AMQPExchange); err != nil {
		return err
	}
	dispatcher := &event.TimeoutDispatcher{Next: event.NewDispatcher(ch, cfg.AMQPExchange)}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewPrometheusMetrics(reg, cfg.ServiceName)

	driverRepo := database.NewDriverRepository(db)
	rideRepo := database.NewRideRepository(db)
	postRepo := database.NewPostRepository(db)
	locationIndex := database.NewRedisLocationRepository(rdb, log)
	uow := database.NewUnitOfWork(db)

	locationHandler := handler.NewLocationHandler(
		&location.UpdateLocationMetricsDecorator{
			Next:    location.NewUpdateUseCase(driverRepo, dispatcher, log),
			Metrics: m,
		},
		location.NewNearbyUseCase(locationIndex),
		log,
	)
	rideHandler := &handler.Ride{
		RequestUseCase: ride.NewRequestUseCase(rideRepo),
		StatusUseCase:  ride.NewStatusUseCase(rideRepo, driverRepo, log),
		UpdateBidUseCase: &ride.UpdateBidMetricsDecorator{
			Next:    ride.NewUpdateBidUseCase(rideRepo),
			Metrics: m,
		},
		TransitionUseCase: &ride.TransitionMetricsDecorator{
			Next:    ride.NewTransitionUseCase(rideRepo),
			Metrics: m,
		},
		Logger: log,
	}
	functionsHandler := &handler.Functions{
		CreateReferralUseCase: &referral.CreateReferralMetricsDecorator{
			Next:    referral.NewCreateUseCase(uow, cfg.ReferralRewardAmount, log),
			Metrics: m,
		},
		IncrementLikesUseCase: post.IncrementLikesMetricsDecorator{
			Next:    post.NewIncrementLikesUseCase(postRepo, log),
			Metrics: m,
		},
		Logger: log,
	}

	healthHandler, err := handler.NewHealthHandler(cfg.ServiceName+"-api",
		handler.WithVersion(version),
		handler.WithPostgres(db),
		handler.WithRedis(storage.NewRedisAdapter(rdb, "")),
		handler.WithRabbitMQ(cfg.AMQPURL),
	)
	if err != nil {
		return err
	}

	limiter := middleware.NewRateLimiter(ctx, middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	})

	router := web.NewRouter(web.Handlers{
		Location:  locationHandler,
		Ride:      rideHandler,
		Functions: functionsHandler,
		Health:    healthHandler,
		Metrics:   promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
	}, web.RouterConfig{
		ServiceName: cfg.ServiceName,
		JWTSecret:   cfg.JWTSecret,
		Timeout:     cfg.RequestTimeout,
	}, limiter, log, m)

	httpServer := &http.Server{
		Addr:              ":" + cfg.WebServerPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	grpcServer := grpc.NewServer(grpc.StatsHandler(otelgrpc.NewServerHandler()))
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(cfg.ServiceName, healthpb.HealthCheckResponse_SERVING)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info(gctx, "HTTP server listening", logger.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
		if err != nil {
			return err
		}
		log.Info(gctx, "gRPC health server listening", logger.String("addr", lis.Addr().String()))
		return grpcServer.Serve(lis)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info(context.Background(), "Shutting down")
		healthServer.Shutdown()

		shutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		err := httpServer.Shutdown(shutCtx)
		grpcServer.GracefulStop()
		return err
	})

	return g.Wait()
}

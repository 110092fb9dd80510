// Command tracker streams a driver's position to the API, replaying fixes from a JSON-lines file.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/origa008/zerodriveless-sub001/configs"
	"github.com/origa008/zerodriveless-sub001/internal/application/tracker"
	"github.com/origa008/zerodriveless-sub001/internal/infra/client"
	"github.com/origa008/zerodriveless-sub001/internal/infra/geolocation"
	"github.com/origa008/zerodriveless-sub001/pkg/logger"
)

func main() {
	cfg, err := configs.LoadConfig(".")
	if err != nil {
		panic(err)
	}

	log := logger.NewLogger(cfg.ServiceName+"-tracker", cfg.IsProduction())
	if err := run(cfg, log); err != nil {
		log.Error(context.Background(), "Tracker stopped with error", logger.WithError(err))
		os.Exit(1)
	}
}

func run(cfg *configs.Conf, log logger.Logger) error {
	if cfg.TrackerDriverID == "" || cfg.TrackerReplayFile == "" {
		return errors.New("TRACKER_DRIVER_ID and TRACKER_REPLAY_FILE are required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f, err := os.Open(cfg.TrackerReplayFile)
	if err != nil {
		return err
	}
	replay, err := geolocation.NewReplay(f, cfg.TrackerInterval, true)
	f.Close()
	if err != nil {
		return err
	}

	done := make(chan struct{}, 1)
	notifier := tracker.NotifierFunc(func(ctx context.Context, message string) {
		log.Warn(ctx, "Driver notified", logger.String("message", message))
		select {
		case done <- struct{}{}:
		default:
		}
	})

	t := tracker.New(cfg.TrackerDriverID,
		replay,
		client.NewLocationClient(cfg.TrackerAPIURL, cfg.TrackerToken, cfg.RequestTimeout, log),
		notifier,
		tracker.WithLogger(log),
		tracker.WithRetryPolicy(tracker.RetryPolicy{MaxRetries: cfg.TrackerMaxRetries, BaseWait: cfg.TrackerInterval / 4}),
	)

	if err := t.Start(ctx); err != nil {
		return err
	}
	log.Info(ctx, "Tracking started", logger.String("driver_id", cfg.TrackerDriverID))

	select {
	case <-ctx.Done():
		t.Stop()
		log.Info(context.Background(), "Tracking stopped")
		return nil
	case <-done:
		return t.State().LastError
	}
}

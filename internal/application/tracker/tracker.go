// Package tracker keeps a driver's position flowing from a Geolocator to a LocationSink
// for as long as a tracking session is active.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/origa008/zerodriveless-sub001/internal/application/port/outbound"
	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
	"github.com/origa008/zerodriveless-sub001/pkg/logger"
)

var (
	ErrAlreadyTracking   = errors.New("tracking already active")
	ErrPersistenceFailed = errors.New("failed to persist location")
)

// ErrPushRejected marks a sink error that retrying cannot fix.
var ErrPushRejected = errors.New("location push rejected")

// DefaultPositionOptions asks for a fresh high-accuracy fix within ten seconds.
var DefaultPositionOptions = outbound.PositionOptions{
	HighAccuracy: true,
	MaximumAge:   0,
	Timeout:      10 * time.Second,
}

type LocationSink interface {
	Push(ctx context.Context, driverID string, p entity.Point, at time.Time) error
}

// Notifier shows a message to the driver.
type Notifier interface {
	Notify(ctx context.Context, message string)
}

type NotifierFunc func(ctx context.Context, message string)

func (f NotifierFunc) Notify(ctx context.Context, message string) { f(ctx, message) }

// RetryPolicy retries a failed push with exponential backoff. The zero value never retries.
// Errors wrapping ErrPushRejected are never retried.
type RetryPolicy struct {
	MaxRetries int
	BaseWait   time.Duration
}

type State struct {
	Tracking   bool
	LastError  error
	LastUpdate time.Time
}

type session struct {
	ctx    context.Context
	cancel context.CancelFunc
	watch  outbound.PositionWatch
	wg     sync.WaitGroup
}

type Tracker struct {
	driverID string
	geo      outbound.Geolocator
	sink     LocationSink
	notifier Notifier
	log      logger.Logger
	retry    RetryPolicy
	opts     outbound.PositionOptions
	now      func() time.Time

	mu      sync.Mutex
	state   State
	current *session
}

type Option func(*Tracker)

func WithRetryPolicy(p RetryPolicy) Option {
	return func(t *Tracker) { t.retry = p }
}

func WithLogger(l logger.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

func WithPositionOptions(o outbound.PositionOptions) Option {
	return func(t *Tracker) { t.opts = o }
}

func New(driverID string, geo outbound.Geolocator, sink LocationSink, notifier Notifier, opts ...Option) *Tracker {
	t := &Tracker{
		driverID: driverID,
		geo:      geo,
		sink:     sink,
		notifier: notifier,
		log:      logger.NewNop(),
		opts:     DefaultPositionOptions,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start takes one fix, persists it and opens the continuous watch. A failure ends the
// session, notifies the driver and is returned.
func (t *Tracker) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.current != nil {
		t.mu.Unlock()
		return ErrAlreadyTracking
	}
	s := &session{}
	s.ctx, s.cancel = context.WithCancel(ctx)
	t.current = s
	t.state.Tracking = true
	t.state.LastError = nil
	t.mu.Unlock()

	t.log.Info(ctx, "Tracking started", logger.String("driver_id", t.driverID))

	pos, err := t.geo.CurrentPosition(s.ctx, t.opts)
	if err != nil {
		t.end(s, err)
		return err
	}
	t.persist(s, pos)

	watch, err := t.geo.Watch(s.ctx, t.opts)
	if err != nil {
		t.end(s, err)
		return err
	}

	t.mu.Lock()
	if t.current != s {
		// stopped or failed while the watch was opening
		t.mu.Unlock()
		_ = watch.Close()
		return nil
	}
	s.watch = watch
	s.wg.Add(1)
	t.mu.Unlock()

	go t.loop(s, watch)
	return nil
}

// Stop releases the watch and returns once in-flight pushes are done. It is safe to call
// when tracking is not active.
func (t *Tracker) Stop() {
	t.mu.Lock()
	s := t.current
	t.current = nil
	t.state.Tracking = false
	var watch outbound.PositionWatch
	if s != nil {
		watch = s.watch
	}
	t.mu.Unlock()

	if s == nil {
		return
	}
	s.cancel()
	if watch != nil {
		_ = watch.Close()
	}
	s.wg.Wait()
	t.log.Info(s.ctx, "Tracking stopped", logger.String("driver_id", t.driverID))
}

func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Tracker) loop(s *session, watch outbound.PositionWatch) {
	defer s.wg.Done()
	for {
		select {
		case <-s.ctx.Done():
			t.release(s)
			return
		case res, ok := <-watch.Updates():
			if !ok {
				t.fail(s, outbound.ErrPositionUnavailable)
				return
			}
			if res.Err != nil {
				t.fail(s, res.Err)
				return
			}
			t.persist(s, res.Position)
		}
	}
}

func (t *Tracker) persist(s *session, pos outbound.Position) {
	t.mu.Lock()
	if t.current != s {
		t.mu.Unlock()
		return
	}
	s.wg.Add(1)
	t.mu.Unlock()

	go func() {
		defer s.wg.Done()
		if s.ctx.Err() != nil {
			return
		}
		at := pos.Timestamp
		if at.IsZero() {
			at = t.now().UTC()
		}
		if err := t.push(s.ctx, pos.Point, at); err != nil {
			if s.ctx.Err() != nil {
				return
			}
			t.fail(s, fmt.Errorf("%w: %v", ErrPersistenceFailed, err))
			return
		}
		t.mu.Lock()
		if t.current == s && at.After(t.state.LastUpdate) {
			t.state.LastUpdate = at
		}
		t.mu.Unlock()
	}()
}

func (t *Tracker) push(ctx context.Context, p entity.Point, at time.Time) error {
	var err error
	for attempt := 0; attempt <= t.retry.MaxRetries; attempt++ {
		err = t.sink.Push(ctx, t.driverID, p, at)
		if err == nil || errors.Is(err, ErrPushRejected) {
			return err
		}
		if attempt < t.retry.MaxRetries {
			wait := t.retry.BaseWait * time.Duration(math.Pow(2, float64(attempt)))
			t.log.Warn(ctx, "Location push failed, retrying",
				logger.String("driver_id", t.driverID),
				logger.Int("attempt", attempt+1),
				logger.Duration("wait", wait),
				logger.WithError(err),
			)
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		}
	}
	return err
}

// end fails s, unless the caller's context went away first.
func (t *Tracker) end(s *session, err error) {
	if s.ctx.Err() != nil {
		t.release(s)
		return
	}
	t.fail(s, err)
}

// release ends s quietly after its parent context was cancelled. Stop already handles
// the case where s is no longer current.
func (t *Tracker) release(s *session) {
	t.mu.Lock()
	if t.current != s {
		t.mu.Unlock()
		return
	}
	t.current = nil
	t.state.Tracking = false
	watch := s.watch
	t.mu.Unlock()

	s.cancel()
	if watch != nil {
		_ = watch.Close()
	}
	t.log.Info(s.ctx, "Tracking cancelled", logger.String("driver_id", t.driverID))
}

// fail ends s if it is still the active session.
func (t *Tracker) fail(s *session, err error) {
	t.mu.Lock()
	if t.current != s {
		t.mu.Unlock()
		return
	}
	t.current = nil
	t.state.Tracking = false
	t.state.LastError = err
	watch := s.watch
	t.mu.Unlock()

	s.cancel()
	if watch != nil {
		_ = watch.Close()
	}

	t.log.Warn(s.ctx, "Tracking halted",
		logger.String("driver_id", t.driverID),
		logger.WithError(err),
	)
	t.notifier.Notify(context.WithoutCancel(s.ctx), Message(err))
}

// Message renders err as the text shown to the driver.
func Message(err error) string {
	switch {
	case errors.Is(err, outbound.ErrPermissionDenied):
		return "Location permission denied. Enable location access to go online."
	case errors.Is(err, outbound.ErrTimeout):
		return "Timed out while getting your location. Please try again."
	case errors.Is(err, outbound.ErrPositionUnavailable):
		return "Your location is currently unavailable."
	case errors.Is(err, ErrPersistenceFailed):
		return "Failed to update your location."
	default:
		return "Location tracking stopped unexpectedly."
	}
}

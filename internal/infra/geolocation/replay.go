// Package geolocation provides Geolocator implementations that do not depend on a device.
package geolocation

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/origa008/zerodriveless-sub001/internal/application/port/outbound"
	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
)

// Fix is one line of a replay file. Error, when set, is one of permission_denied,
// position_unavailable or timeout and ends the watch.
type Fix struct {
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lng"`
	Accuracy  float64   `json:"accuracy,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Replay plays back recorded fixes, one every interval.
type Replay struct {
	fixes    []Fix
	interval time.Duration
	loop     bool
	now      func() time.Time

	mu     sync.Mutex
	next   int
	looped bool
}

// NewReplay reads JSON-lines fixes from r. Blank lines and lines starting with # are skipped.
// When loop is set, recorded timestamps are only used on the first pass; later passes are
// stamped with the current time.
func NewReplay(r io.Reader, interval time.Duration, loop bool) (*Replay, error) {
	var fixes []Fix
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		var f Fix
		if err := json.Unmarshal([]byte(text), &f); err != nil {
			return nil, fmt.Errorf("replay line %d: %w", line, err)
		}
		fixes = append(fixes, f)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read replay: %w", err)
	}
	return &Replay{fixes: fixes, interval: interval, loop: loop, now: time.Now}, nil
}

func (r *Replay) pop() (Fix, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.next >= len(r.fixes) {
		if !r.loop || len(r.fixes) == 0 {
			return Fix{}, false
		}
		r.next = 0
		r.looped = true
	}
	f := r.fixes[r.next]
	r.next++
	if r.looped {
		f.Timestamp = time.Time{}
	}
	return f, true
}

func (r *Replay) toResult(f Fix) outbound.PositionResult {
	switch f.Error {
	case "":
	case "permission_denied":
		return outbound.PositionResult{Err: outbound.ErrPermissionDenied}
	case "timeout":
		return outbound.PositionResult{Err: outbound.ErrTimeout}
	default:
		return outbound.PositionResult{Err: outbound.ErrPositionUnavailable}
	}

	p, err := entity.NewPoint(f.Longitude, f.Latitude)
	if err != nil {
		return outbound.PositionResult{Err: fmt.Errorf("%w: %v", outbound.ErrPositionUnavailable, err)}
	}
	ts := f.Timestamp
	if ts.IsZero() {
		ts = r.now().UTC()
	}
	return outbound.PositionResult{Position: outbound.Position{Point: p, Accuracy: f.Accuracy, Timestamp: ts}}
}

func (r *Replay) CurrentPosition(ctx context.Context, opts outbound.PositionOptions) (outbound.Position, error) {
	if err := ctx.Err(); err != nil {
		return outbound.Position{}, err
	}
	f, ok := r.pop()
	if !ok {
		return outbound.Position{}, outbound.ErrPositionUnavailable
	}
	res := r.toResult(f)
	return res.Position, res.Err
}

// Watch emits the remaining fixes. A fix that would arrive later than opts.Timeout is
// reported as ErrTimeout instead. The channel closes when the replay is exhausted.
func (r *Replay) Watch(ctx context.Context, opts outbound.PositionOptions) (outbound.PositionWatch, error) {
	w := &replayWatch{
		updates: make(chan outbound.PositionResult, 1),
		done:    make(chan struct{}),
	}
	go r.run(ctx, opts, w)
	return w, nil
}

func (r *Replay) run(ctx context.Context, opts outbound.PositionOptions, w *replayWatch) {
	defer close(w.updates)

	wait := r.interval
	timedOut := opts.Timeout > 0 && wait > opts.Timeout
	if timedOut {
		wait = opts.Timeout
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case <-timer.C:
		}

		var res outbound.PositionResult
		if timedOut {
			res = outbound.PositionResult{Err: outbound.ErrTimeout}
		} else {
			f, ok := r.pop()
			if !ok {
				return
			}
			res = r.toResult(f)
		}

		select {
		case w.updates <- res:
		case <-ctx.Done():
			return
		case <-w.done:
			return
		}
		if res.Err != nil {
			return
		}
		timer.Reset(wait)
	}
}

type replayWatch struct {
	updates chan outbound.PositionResult
	done    chan struct{}
	once    sync.Once
}

func (w *replayWatch) Updates() <-chan outbound.PositionResult { return w.updates }

func (w *replayWatch) Close() error {
	w.once.Do(func() { close(w.done) })
	return nil
}

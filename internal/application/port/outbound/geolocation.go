package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
)

var (
	ErrPermissionDenied    = errors.New("location permission denied")
	ErrPositionUnavailable = errors.New("position unavailable")
	ErrTimeout             = errors.New("timed out waiting for position")
)

type PositionOptions struct {
	HighAccuracy bool
	MaximumAge   time.Duration
	Timeout      time.Duration
}

type Position struct {
	Point     entity.Point
	Accuracy  float64
	Timestamp time.Time
}

// PositionResult carries either a fix or the error that ended the watch.
type PositionResult struct {
	Position Position
	Err      error
}

// PositionWatch is a continuous position query. Close releases the handle and is safe to
// call more than once.
type PositionWatch interface {
	Updates() <-chan PositionResult
	Close() error
}

type Geolocator interface {
	CurrentPosition(ctx context.Context, opts PositionOptions) (Position, error)
	Watch(ctx context.Context, opts PositionOptions) (PositionWatch, error)
}

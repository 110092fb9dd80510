package outbound

import (
	"context"
	"time"

	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
)

type DriverRepository interface {
	FindByID(ctx context.Context, id string) (*entity.DriverDetails, error)
	// UpdateLocation writes the driver's single current point. Writes older than the
	// stored timestamp are ignored.
	UpdateLocation(ctx context.Context, driverID string, p entity.Point, at time.Time) error
}

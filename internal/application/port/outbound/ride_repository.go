package outbound

import (
	"context"

	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
)

type RideRepository interface {
	Save(ctx context.Context, ride *entity.Ride) error
	FindByID(ctx context.Context, id string) (*entity.Ride, error)
	UpdatePrice(ctx context.Context, id string, price float64) error
	// UpdateStatus moves a ride from one status to another. It fails with
	// entity.ErrInvalidStateTransition when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id string, from, to entity.RideStatus, driverID string) error
}

package outbound

import (
	"context"

	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
)

type DriverLocation struct {
	DriverID   string  `json:"driver_id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	DistanceKm float64 `json:"distance_km"`
}

// LocationRepository is the geo index of online drivers.
type LocationRepository interface {
	GetNearestDrivers(ctx context.Context, center entity.Point, radiusKm float64, limit int) ([]DriverLocation, error)
	UpdateLocation(ctx context.Context, driverID string, p entity.Point) error
}

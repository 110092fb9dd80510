package location

import (
	"context"
	"fmt"

	"github.com/origa008/zerodriveless-sub001/internal/application/port/outbound"
	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
)

const (
	DefaultRadiusKm = 5.0
	MaxRadiusKm     = 50.0
	DefaultLimit    = 10
)

type NearbyUseCaseImpl struct {
	Index outbound.LocationRepository
}

func NewNearbyUseCase(index outbound.LocationRepository) *NearbyUseCaseImpl {
	return &NearbyUseCaseImpl{Index: index}
}

func (uc *NearbyUseCaseImpl) Execute(ctx context.Context, input NearbyInput) (NearbyOutput, error) {
	center, err := entity.NewPoint(input.Longitude, input.Latitude)
	if err != nil {
		return NearbyOutput{}, err
	}
	radius := input.RadiusKm
	if radius <= 0 {
		radius = DefaultRadiusKm
	}
	if radius > MaxRadiusKm {
		radius = MaxRadiusKm
	}
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	drivers, err := uc.Index.GetNearestDrivers(ctx, center, radius, limit)
	if err != nil {
		return NearbyOutput{}, fmt.Errorf("nearby drivers lookup failed: %w", err)
	}
	if drivers == nil {
		drivers = []outbound.DriverLocation{}
	}
	return NearbyOutput{Drivers: drivers}, nil
}

package ride

import (
	"context"
	"errors"
	"fmt"

	"github.com/origa008/zerodriveless-sub001/internal/application/port/outbound"
	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
	"github.com/origa008/zerodriveless-sub001/pkg/logger"
)

type StatusUseCaseImpl struct {
	Rides   outbound.RideRepository
	Drivers outbound.DriverRepository
	Logger  logger.Logger
}

func NewStatusUseCase(rides outbound.RideRepository, drivers outbound.DriverRepository, log logger.Logger) *StatusUseCaseImpl {
	return &StatusUseCaseImpl{Rides: rides, Drivers: drivers, Logger: log}
}

// Execute reports the ride status. The driver profile is attached only while the ride is
// confirmed, i.e. while the passenger waits for pickup.
func (uc *StatusUseCaseImpl) Execute(ctx context.Context, input StatusInput) (StatusOutput, error) {
	if err := entity.ValidateID(input.RideID); err != nil {
		return StatusOutput{}, err
	}
	ride, err := uc.Rides.FindByID(ctx, input.RideID)
	if err != nil {
		return StatusOutput{}, err
	}

	out := StatusOutput{
		RideID: ride.ID(),
		Status: ride.Status(),
		Price:  ride.Price(),
	}
	if ride.Status() != entity.RideStatusConfirmed || ride.DriverID() == "" {
		return out, nil
	}

	driver, err := uc.Drivers.FindByID(ctx, ride.DriverID())
	if errors.Is(err, entity.ErrDriverNotFound) {
		uc.Logger.Warn(ctx, "Confirmed ride references a missing driver",
			logger.String("ride_id", ride.ID()),
			logger.String("driver_id", ride.DriverID()),
		)
		return out, nil
	}
	if err != nil {
		return StatusOutput{}, fmt.Errorf("failed to load driver: %w", err)
	}

	out.Driver = &DriverView{
		ID:           driver.ID,
		Name:         driver.Name,
		VehicleModel: driver.VehicleModel,
		VehiclePlate: driver.VehiclePlate,
		Rating:       driver.Rating,
		Location:     driver.Location,
	}
	return out, nil
}

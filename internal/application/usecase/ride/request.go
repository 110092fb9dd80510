package ride

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/origa008/zerodriveless-sub001/internal/application/port/outbound"
	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
)

type RequestUseCaseImpl struct {
	Repo outbound.RideRepository
}

func NewRequestUseCase(repo outbound.RideRepository) *RequestUseCaseImpl {
	return &RequestUseCaseImpl{Repo: repo}
}

func (uc *RequestUseCaseImpl) Execute(ctx context.Context, input RequestInput) (Output, error) {
	if input.PassengerID != "" {
		if err := entity.ValidateID(input.PassengerID); err != nil {
			return Output{}, fmt.Errorf("passenger: %w", err)
		}
	}
	ride, err := entity.NewRide(entity.RideParams{
		ID:             uuid.NewString(),
		PassengerID:    input.PassengerID,
		Pickup:         input.Pickup,
		Dropoff:        input.Dropoff,
		PickupAddress:  input.PickupAddress,
		DropoffAddress: input.DropoffAddress,
		Price:          input.Price,
		DistanceKm:     input.DistanceKm,
		DurationMin:    input.DurationMin,
	})
	if err != nil {
		return Output{}, err
	}

	if err := uc.Repo.Save(ctx, ride); err != nil {
		return Output{}, fmt.Errorf("failed to save ride: %w", err)
	}
	return toOutput(ride), nil
}

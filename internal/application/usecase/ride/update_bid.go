package ride

import (
	"context"
	"fmt"

	"github.com/origa008/zerodriveless-sub001/internal/application/port/outbound"
	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
)

type UpdateBidUseCaseImpl struct {
	Repo outbound.RideRepository
}

func NewUpdateBidUseCase(repo outbound.RideRepository) *UpdateBidUseCaseImpl {
	return &UpdateBidUseCaseImpl{Repo: repo}
}

// Execute stores the new price and returns the ride as the caller should now see it.
func (uc *UpdateBidUseCaseImpl) Execute(ctx context.Context, input UpdateBidInput) (Output, error) {
	if err := entity.ValidateID(input.RideID); err != nil {
		return Output{}, err
	}
	ride, err := uc.Repo.FindByID(ctx, input.RideID)
	if err != nil {
		return Output{}, err
	}

	if err := ride.UpdateBid(input.Amount); err != nil {
		return Output{}, err
	}

	if err := uc.Repo.UpdatePrice(ctx, ride.ID(), ride.Price()); err != nil {
		return Output{}, fmt.Errorf("failed to save bid: %w", err)
	}
	return toOutput(ride), nil
}

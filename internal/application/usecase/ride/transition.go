package ride

import (
	"context"
	"errors"
	"fmt"

	"github.com/origa008/zerodriveless-sub001/internal/application/port/outbound"
	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
)

var ErrUnknownAction = errors.New("unknown ride action")

type TransitionUseCaseImpl struct {
	Repo outbound.RideRepository
}

func NewTransitionUseCase(repo outbound.RideRepository) *TransitionUseCaseImpl {
	return &TransitionUseCaseImpl{Repo: repo}
}

func (uc *TransitionUseCaseImpl) Execute(ctx context.Context, input TransitionInput) (Output, error) {
	switch input.Action {
	case ActionConfirm:
		if err := entity.ValidateID(input.DriverID); err != nil {
			return Output{}, fmt.Errorf("driver: %w", err)
		}
	case ActionStart, ActionComplete, ActionCancel:
	default:
		return Output{}, fmt.Errorf("%w: %q", ErrUnknownAction, input.Action)
	}
	if err := entity.ValidateID(input.RideID); err != nil {
		return Output{}, err
	}

	ride, err := uc.Repo.FindByID(ctx, input.RideID)
	if err != nil {
		return Output{}, err
	}
	from := ride.Status()

	switch input.Action {
	case ActionConfirm:
		err = ride.Confirm(input.DriverID)
	case ActionStart:
		err = ride.Start()
	case ActionComplete:
		err = ride.Complete()
	case ActionCancel:
		err = ride.Cancel()
	}
	if err != nil {
		return Output{}, fmt.Errorf("domain rule violation: %w", err)
	}

	if err := uc.Repo.UpdateStatus(ctx, ride.ID(), from, ride.Status(), ride.DriverID()); err != nil {
		return Output{}, fmt.Errorf("failed to save ride status: %w", err)
	}
	return toOutput(ride), nil
}

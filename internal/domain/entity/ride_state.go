package entity

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrUnknownRideStatus      = errors.New("unknown ride status")
)

type RideState interface {
	Status() RideStatus
	Confirm(r *Ride, driverID string) error
	Start(r *Ride) error
	Complete(r *Ride) error
	Cancel(r *Ride) error
}

func stateFor(status RideStatus) (RideState, error) {
	switch status {
	case RideStatusSearching:
		return &SearchingState{}, nil
	case RideStatusConfirmed:
		return &ConfirmedState{}, nil
	case RideStatusInProgress:
		return &InProgressState{}, nil
	case RideStatusCompleted:
		return &CompletedState{}, nil
	case RideStatusCancelled:
		return &CancelledState{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRideStatus, status)
}

func ParseRideStatus(s string) (RideStatus, error) {
	if _, err := stateFor(RideStatus(s)); err != nil {
		return "", err
	}
	return RideStatus(s), nil
}

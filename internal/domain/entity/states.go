package entity

type SearchingState struct{}

func (s *SearchingState) Status() RideStatus { return RideStatusSearching }

func (s *SearchingState) Confirm(r *Ride, driverID string) error {
	if driverID == "" {
		return ErrIDIsRequired
	}
	r.driverID = driverID
	r.TransitionTo(&ConfirmedState{})
	return nil
}

func (s *SearchingState) Start(r *Ride) error    { return ErrInvalidStateTransition }
func (s *SearchingState) Complete(r *Ride) error { return ErrInvalidStateTransition }

func (s *SearchingState) Cancel(r *Ride) error {
	r.TransitionTo(&CancelledState{})
	return nil
}

type ConfirmedState struct{}

func (s *ConfirmedState) Status() RideStatus { return RideStatusConfirmed }

func (s *ConfirmedState) Confirm(r *Ride, driverID string) error {
	return ErrInvalidStateTransition
}

func (s *ConfirmedState) Start(r *Ride) error {
	r.TransitionTo(&InProgressState{})
	return nil
}

func (s *ConfirmedState) Complete(r *Ride) error { return ErrInvalidStateTransition }

func (s *ConfirmedState) Cancel(r *Ride) error {
	r.TransitionTo(&CancelledState{})
	return nil
}

type InProgressState struct{}

func (s *InProgressState) Status() RideStatus { return RideStatusInProgress }

func (s *InProgressState) Confirm(r *Ride, driverID string) error {
	return ErrInvalidStateTransition
}

func (s *InProgressState) Start(r *Ride) error { return ErrInvalidStateTransition }

func (s *InProgressState) Complete(r *Ride) error {
	r.TransitionTo(&CompletedState{})
	return nil
}

func (s *InProgressState) Cancel(r *Ride) error {
	r.TransitionTo(&CancelledState{})
	return nil
}

type CompletedState struct{}

func (s *CompletedState) Status() RideStatus                     { return RideStatusCompleted }
func (s *CompletedState) Confirm(r *Ride, driverID string) error { return ErrInvalidStateTransition }
func (s *CompletedState) Start(r *Ride) error                    { return ErrInvalidStateTransition }
func (s *CompletedState) Complete(r *Ride) error                 { return ErrInvalidStateTransition }
func (s *CompletedState) Cancel(r *Ride) error                   { return ErrInvalidStateTransition }

type CancelledState struct{}

func (s *CancelledState) Status() RideStatus                     { return RideStatusCancelled }
func (s *CancelledState) Confirm(r *Ride, driverID string) error { return ErrInvalidStateTransition }
func (s *CancelledState) Start(r *Ride) error                    { return ErrInvalidStateTransition }
func (s *CancelledState) Complete(r *Ride) error                 { return ErrInvalidStateTransition }
func (s *CancelledState) Cancel(r *Ride) error                   { return ErrInvalidStateTransition }

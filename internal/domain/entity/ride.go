package entity

import (
	"errors"
	"time"
)

var (
	ErrPassengerIsRequired = errors.New("passenger id is required")
	ErrBidMustBePositive   = errors.New("bid amount must be greater than zero")
	ErrNegativeDistance    = errors.New("distance and duration must not be negative")
	ErrRideClosed          = errors.New("ride is already completed or cancelled")
)

type RideStatus string

const (
	RideStatusSearching  RideStatus = "searching"
	RideStatusConfirmed  RideStatus = "confirmed"
	RideStatusInProgress RideStatus = "in_progress"
	RideStatusCompleted  RideStatus = "completed"
	RideStatusCancelled  RideStatus = "cancelled"
)

// RideParams carries the persisted attributes of a ride.
type RideParams struct {
	ID             string
	PassengerID    string
	DriverID       string
	Pickup         Point
	Dropoff        Point
	PickupAddress  string
	DropoffAddress string
	Price          float64
	DistanceKm     float64
	DurationMin    float64
	Status         RideStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Ride struct {
	id             string
	passengerID    string
	driverID       string
	pickup         Point
	dropoff        Point
	pickupAddress  string
	dropoffAddress string
	price          float64
	distanceKm     float64
	durationMin    float64
	state          RideState
	createdAt      time.Time
	updatedAt      time.Time
}

// NewRide builds a freshly requested ride. The status is always searching.
func NewRide(p RideParams) (*Ride, error) {
	now := time.Now().UTC()
	p.Status = RideStatusSearching
	p.DriverID = ""
	p.CreatedAt = now
	p.UpdatedAt = now
	return RestoreRide(p)
}

// RestoreRide rebuilds a ride loaded from storage.
func RestoreRide(p RideParams) (*Ride, error) {
	state, err := stateFor(p.Status)
	if err != nil {
		return nil, err
	}
	r := &Ride{
		id:             p.ID,
		passengerID:    p.PassengerID,
		driverID:       p.DriverID,
		pickup:         p.Pickup,
		dropoff:        p.Dropoff,
		pickupAddress:  p.PickupAddress,
		dropoffAddress: p.DropoffAddress,
		price:          p.Price,
		distanceKm:     p.DistanceKm,
		durationMin:    p.DurationMin,
		state:          state,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Ride) Validate() error {
	if r.id == "" {
		return ErrIDIsRequired
	}
	if r.passengerID == "" {
		return ErrPassengerIsRequired
	}
	if err := r.pickup.Validate(); err != nil {
		return err
	}
	if err := r.dropoff.Validate(); err != nil {
		return err
	}
	if r.price < 0 {
		return ErrBidMustBePositive
	}
	if r.distanceKm < 0 || r.durationMin < 0 {
		return ErrNegativeDistance
	}
	return nil
}

// UpdateBid replaces the offered price. Closed rides keep their final price.
func (r *Ride) UpdateBid(amount float64) error {
	if amount <= 0 {
		return ErrBidMustBePositive
	}
	if r.IsTerminal() {
		return ErrRideClosed
	}
	r.price = amount
	r.touch()
	return nil
}

func (r *Ride) Confirm(driverID string) error { return r.state.Confirm(r, driverID) }
func (r *Ride) Start() error                  { return r.state.Start(r) }
func (r *Ride) Complete() error               { return r.state.Complete(r) }
func (r *Ride) Cancel() error                 { return r.state.Cancel(r) }

func (r *Ride) TransitionTo(s RideState) {
	r.state = s
	r.touch()
}

func (r *Ride) IsTerminal() bool {
	s := r.Status()
	return s == RideStatusCompleted || s == RideStatusCancelled
}

func (r *Ride) touch() { r.updatedAt = time.Now().UTC() }

func (r *Ride) ID() string             { return r.id }
func (r *Ride) PassengerID() string    { return r.passengerID }
func (r *Ride) DriverID() string       { return r.driverID }
func (r *Ride) Pickup() Point          { return r.pickup }
func (r *Ride) Dropoff() Point         { return r.dropoff }
func (r *Ride) PickupAddress() string  { return r.pickupAddress }
func (r *Ride) DropoffAddress() string { return r.dropoffAddress }
func (r *Ride) Price() float64         { return r.price }
func (r *Ride) DistanceKm() float64    { return r.distanceKm }
func (r *Ride) DurationMin() float64   { return r.durationMin }
func (r *Ride) Status() RideStatus     { return r.state.Status() }
func (r *Ride) CreatedAt() time.Time   { return r.createdAt }
func (r *Ride) UpdatedAt() time.Time   { return r.updatedAt }

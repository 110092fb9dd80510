package ride

import (
	"time"

	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
)

type Action string

const (
	ActionConfirm  Action = "confirm"
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

// Input

type RequestInput struct {
	PassengerID    string       `json:"passenger_id"`
	Pickup         entity.Point `json:"pickup"`
	Dropoff        entity.Point `json:"dropoff"`
	PickupAddress  string       `json:"pickup_address"`
	DropoffAddress string       `json:"dropoff_address"`
	Price          float64      `json:"price"`
	DistanceKm     float64      `json:"distance_km"`
	DurationMin    float64      `json:"duration_min"`
}

type UpdateBidInput struct {
	RideID string  `json:"ride_id"`
	Amount float64 `json:"amount"`
}

type StatusInput struct {
	RideID string `json:"ride_id"`
}

type TransitionInput struct {
	RideID   string `json:"ride_id"`
	Action   Action `json:"action"`
	DriverID string `json:"driver_id,omitempty"`
}

// Output

type Output struct {
	ID             string            `json:"id"`
	PassengerID    string            `json:"passenger_id"`
	DriverID       string            `json:"driver_id,omitempty"`
	Pickup         entity.Point      `json:"pickup"`
	Dropoff        entity.Point      `json:"dropoff"`
	PickupAddress  string            `json:"pickup_address,omitempty"`
	DropoffAddress string            `json:"dropoff_address,omitempty"`
	Status         entity.RideStatus `json:"status"`
	Price          float64           `json:"price"`
	DistanceKm     float64           `json:"distance_km"`
	DurationMin    float64           `json:"duration_min"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

type DriverView struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	VehicleModel string        `json:"vehicle_model"`
	VehiclePlate string        `json:"vehicle_plate"`
	Rating       float64       `json:"rating"`
	Location     *entity.Point `json:"location,omitempty"`
}

type StatusOutput struct {
	RideID string            `json:"ride_id"`
	Status entity.RideStatus `json:"status"`
	Price  float64           `json:"price"`
	Driver *DriverView       `json:"driver,omitempty"`
}

func toOutput(r *entity.Ride) Output {
	return Output{
		ID:             r.ID(),
		PassengerID:    r.PassengerID(),
		DriverID:       r.DriverID(),
		Pickup:         r.Pickup(),
		Dropoff:        r.Dropoff(),
		PickupAddress:  r.PickupAddress(),
		DropoffAddress: r.DropoffAddress(),
		Status:         r.Status(),
		Price:          r.Price(),
		DistanceKm:     r.DistanceKm(),
		DurationMin:    r.DurationMin(),
		CreatedAt:      r.CreatedAt(),
		UpdatedAt:      r.UpdatedAt(),
	}
}

package location

import (
	"time"

	"github.com/origa008/zerodriveless-sub001/internal/application/port/outbound"
)

const EventLocationUpdated = "driver.location.updated"

// Input

type UpdateInput struct {
	DriverID   string    `json:"driver_id"`
	Longitude  float64   `json:"longitude"`
	Latitude   float64   `json:"latitude"`
	RecordedAt time.Time `json:"recorded_at"`
}

type NearbyInput struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusKm  float64 `json:"radius_km"`
	Limit     int     `json:"limit"`
}

// Output

type UpdateOutput struct {
	Success   bool      `json:"success"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NearbyOutput struct {
	Drivers []outbound.DriverLocation `json:"drivers"`
}

// Events

type LocationUpdatedPayload struct {
	DriverID   string    `json:"driver_id"`
	Longitude  float64   `json:"longitude"`
	Latitude   float64   `json:"latitude"`
	Geohash    string    `json:"geohash"`
	RecordedAt time.Time `json:"recorded_at"`
}

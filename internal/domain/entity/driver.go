package entity

import (
	"errors"
	"time"
)

var ErrStaleLocation = errors.New("location is older than the stored one")

// DriverDetails is the driver profile row. It holds at most one current location.
type DriverDetails struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	Status            string     `json:"status"`
	Name              string     `json:"name"`
	VehicleModel      string     `json:"vehicle_model"`
	VehiclePlate      string     `json:"vehicle_plate"`
	Rating            float64    `json:"rating"`
	Location          *Point     `json:"location,omitempty"`
	Geohash           string     `json:"geohash,omitempty"`
	LocationUpdatedAt *time.Time `json:"location_updated_at,omitempty"`
}

// MaxClockSkew is how far ahead of the server clock a device timestamp may run.
const MaxClockSkew = 30 * time.Second

// FixTime returns the time a location fix is stored under. Missing timestamps and ones
// further ahead than MaxClockSkew become now.
func FixTime(recordedAt, now time.Time) time.Time {
	now = now.UTC()
	if recordedAt.IsZero() || recordedAt.After(now.Add(MaxClockSkew)) {
		return now
	}
	return recordedAt.UTC()
}

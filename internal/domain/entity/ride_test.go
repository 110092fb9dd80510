package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRide(t *testing.T) *Ride {
	t.Helper()
	ride, err := NewRide(RideParams{
		ID:          "ride-1",
		PassengerID: "passenger-1",
		Pickup:      Point{Longitude: -46.6333, Latitude: -23.5505},
		Dropoff:     Point{Longitude: -46.6550, Latitude: -23.5610},
		Price:       25,
		DistanceKm:  3.2,
		DurationMin: 12,
	})
	require.NoError(t, err)
	return ride
}

func TestNewRide(t *testing.T) {
	//Arrange
	ride := newTestRide(t)

	//Assert
	assert.Equal(t, RideStatusSearching, ride.Status())
	assert.Empty(t, ride.DriverID())
	assert.Equal(t, 25.0, ride.Price())
	assert.False(t, ride.CreatedAt().IsZero())
}

func TestNewRide_ValidationErrors(t *testing.T) {
	valid := Point{Longitude: 1, Latitude: 1}
	tests := []struct {
		name        string
		params      RideParams
		expectedErr error
	}{
		{"Should return error when ID is empty", RideParams{PassengerID: "p", Pickup: valid, Dropoff: valid}, ErrIDIsRequired},
		{"Should return error when passenger is empty", RideParams{ID: "r", Pickup: valid, Dropoff: valid}, ErrPassengerIsRequired},
		{"Should return error when pickup is invalid", RideParams{ID: "r", PassengerID: "p", Pickup: Point{Latitude: 100}, Dropoff: valid}, ErrInvalidLatitude},
		{"Should return error when price is negative", RideParams{ID: "r", PassengerID: "p", Pickup: valid, Dropoff: valid, Price: -1}, ErrBidMustBePositive},
		{"Should return error when distance is negative", RideParams{ID: "r", PassengerID: "p", Pickup: valid, Dropoff: valid, DistanceKm: -1}, ErrNegativeDistance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ride, err := NewRide(tt.params)

			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, ride)
		})
	}
}

func TestRestoreRide_UnknownStatus(t *testing.T) {
	_, err := RestoreRide(RideParams{ID: "r", PassengerID: "p", Status: "teleporting"})
	assert.ErrorIs(t, err, ErrUnknownRideStatus)
}

func TestRide_UpdateBid(t *testing.T) {
	ride := newTestRide(t)
	before := ride.UpdatedAt()
	time.Sleep(time.Millisecond)

	err := ride.UpdateBid(40)

	require.NoError(t, err)
	assert.Equal(t, 40.0, ride.Price())
	assert.True(t, ride.UpdatedAt().After(before))
}

func TestRide_UpdateBid_Rejected(t *testing.T) {
	ride := newTestRide(t)
	assert.ErrorIs(t, ride.UpdateBid(0), ErrBidMustBePositive)
	assert.ErrorIs(t, ride.UpdateBid(-3), ErrBidMustBePositive)

	require.NoError(t, ride.Cancel())
	assert.ErrorIs(t, ride.UpdateBid(50), ErrRideClosed)
	assert.Equal(t, 25.0, ride.Price())
}

func TestRide_Lifecycle(t *testing.T) {
	ride := newTestRide(t)

	require.NoError(t, ride.Confirm("driver-7"))
	assert.Equal(t, RideStatusConfirmed, ride.Status())
	assert.Equal(t, "driver-7", ride.DriverID())

	require.NoError(t, ride.Start())
	assert.Equal(t, RideStatusInProgress, ride.Status())

	require.NoError(t, ride.Complete())
	assert.Equal(t, RideStatusCompleted, ride.Status())
	assert.True(t, ride.IsTerminal())
}

func TestRide_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name  string
		setup func(r *Ride)
		act   func(r *Ride) error
	}{
		{"searching cannot start", func(r *Ride) {}, (*Ride).Start},
		{"searching cannot complete", func(r *Ride) {}, (*Ride).Complete},
		{"confirmed cannot be confirmed again", func(r *Ride) { _ = r.Confirm("d") }, func(r *Ride) error { return r.Confirm("other") }},
		{"in progress cannot go back to start", func(r *Ride) { _ = r.Confirm("d"); _ = r.Start() }, (*Ride).Start},
		{"completed cannot be cancelled", func(r *Ride) { _ = r.Confirm("d"); _ = r.Start(); _ = r.Complete() }, (*Ride).Cancel},
		{"cancelled cannot be confirmed", func(r *Ride) { _ = r.Cancel() }, func(r *Ride) error { return r.Confirm("d") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ride := newTestRide(t)
			tt.setup(ride)
			status := ride.Status()

			err := tt.act(ride)

			assert.ErrorIs(t, err, ErrInvalidStateTransition)
			assert.Equal(t, status, ride.Status())
		})
	}
}

func TestRide_ConfirmRequiresDriver(t *testing.T) {
	ride := newTestRide(t)
	assert.ErrorIs(t, ride.Confirm(""), ErrIDIsRequired)
	assert.Equal(t, RideStatusSearching, ride.Status())
}

func TestParseRideStatus(t *testing.T) {
	s, err := ParseRideStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, RideStatusInProgress, s)

	_, err = ParseRideStatus("IN_PROGRESS")
	assert.ErrorIs(t, err, ErrUnknownRideStatus)
}

package location

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/origa008/zerodriveless-sub001/internal/application/port/outbound/mocks"
	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
	"github.com/origa008/zerodriveless-sub001/pkg/events"
	"github.com/origa008/zerodriveless-sub001/pkg/logger"
	"github.com/origa008/zerodriveless-sub001/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	driverID      = "6f1c2d3e-4b5a-4c7d-8e9f-0a1b2c3d4e5f"
	ghostDriverID = "00000000-0000-4000-8000-000000000000"
)

func TestUpdateUseCase_Execute(t *testing.T) {
	//Arrange
	repo := &mocks.DriverRepository{}
	dispatcher := &mocks.EventDispatcher{}
	uc := NewUpdateUseCase(repo, dispatcher, logger.NewNop())

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	point := entity.Point{Longitude: -46.6333, Latitude: -23.5505}
	repo.On("UpdateLocation", mock.Anything, driverID, point, at).Return(nil)
	dispatcher.On("Dispatch", mock.Anything, mock.MatchedBy(func(e events.Event) bool {
		payload, ok := e.GetPayload().(LocationUpdatedPayload)
		return ok && e.GetName() == EventLocationUpdated &&
			e.GetAggregateID() == driverID &&
			payload.Geohash == point.Geohash()
	})).Return(nil)

	//Act
	out, err := uc.Execute(context.Background(), UpdateInput{
		DriverID:   driverID,
		Longitude:  point.Longitude,
		Latitude:   point.Latitude,
		RecordedAt: at,
	})

	//Assert
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, at, out.UpdatedAt)
	repo.AssertExpectations(t)
	dispatcher.AssertExpectations(t)
}

func TestUpdateUseCase_Execute_FastDeviceClock(t *testing.T) {
	repo := &mocks.DriverRepository{}
	uc := NewUpdateUseCase(repo, nil, logger.NewNop())
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }

	var stored []time.Time
	repo.On("UpdateLocation", mock.Anything, driverID, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { stored = append(stored, args.Get(3).(time.Time)) }).
		Return(nil)

	// device clock one hour ahead, then a correct fix a few seconds later
	out, err := uc.Execute(context.Background(), UpdateInput{DriverID: driverID, Latitude: 1, Longitude: 1, RecordedAt: now.Add(time.Hour)})
	require.NoError(t, err)
	assert.Equal(t, now, out.UpdatedAt)

	now = now.Add(5 * time.Second)
	_, err = uc.Execute(context.Background(), UpdateInput{DriverID: driverID, Latitude: 2, Longitude: 2, RecordedAt: now})
	require.NoError(t, err)

	require.Len(t, stored, 2)
	assert.True(t, stored[1].After(stored[0]), "second fix must not look stale: %v", stored)
}

func TestUpdateUseCase_Execute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		input       UpdateInput
		expectedErr error
	}{
		{"Should return error when driver is empty", UpdateInput{Latitude: 1, Longitude: 1}, entity.ErrIDIsRequired},
		{"Should return error when driver id is not a uuid", UpdateInput{DriverID: "driver-1", Latitude: 1, Longitude: 1}, entity.ErrInvalidID},
		{"Should return error when latitude is out of range", UpdateInput{DriverID: driverID, Latitude: 91}, entity.ErrInvalidLatitude},
		{"Should return error when longitude is out of range", UpdateInput{DriverID: driverID, Longitude: -190}, entity.ErrInvalidLongitude},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mocks.DriverRepository{}
			uc := NewUpdateUseCase(repo, nil, logger.NewNop())

			out, err := uc.Execute(context.Background(), tt.input)

			assert.ErrorIs(t, err, tt.expectedErr)
			assert.False(t, out.Success)
			repo.AssertNotCalled(t, "UpdateLocation")
		})
	}
}

func TestUpdateUseCase_Execute_DriverNotFound(t *testing.T) {
	repo := &mocks.DriverRepository{}
	dispatcher := &mocks.EventDispatcher{}
	uc := NewUpdateUseCase(repo, dispatcher, logger.NewNop())
	repo.On("UpdateLocation", mock.Anything, ghostDriverID, mock.Anything, mock.Anything).Return(entity.ErrDriverNotFound)

	_, err := uc.Execute(context.Background(), UpdateInput{DriverID: ghostDriverID, Latitude: 1, Longitude: 1})

	assert.ErrorIs(t, err, entity.ErrDriverNotFound)
	dispatcher.AssertNotCalled(t, "Dispatch")
}

func TestUpdateUseCase_Execute_StaleIsIgnored(t *testing.T) {
	repo := &mocks.DriverRepository{}
	dispatcher := &mocks.EventDispatcher{}
	uc := NewUpdateUseCase(repo, dispatcher, logger.NewNop())
	repo.On("UpdateLocation", mock.Anything, driverID, mock.Anything, mock.Anything).Return(entity.ErrStaleLocation)

	out, err := uc.Execute(context.Background(), UpdateInput{DriverID: driverID, Latitude: 1, Longitude: 1})

	require.NoError(t, err)
	assert.True(t, out.Success)
	dispatcher.AssertNotCalled(t, "Dispatch")
}

func TestUpdateUseCase_Execute_PublishFailureDoesNotFail(t *testing.T) {
	repo := &mocks.DriverRepository{}
	dispatcher := &mocks.EventDispatcher{}
	uc := NewUpdateUseCase(repo, dispatcher, logger.NewNop())
	repo.On("UpdateLocation", mock.Anything, driverID, mock.Anything, mock.Anything).Return(nil)
	dispatcher.On("Dispatch", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	out, err := uc.Execute(context.Background(), UpdateInput{DriverID: driverID, Latitude: 1, Longitude: 1})

	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.False(t, out.UpdatedAt.IsZero())
}

func TestUpdateLocationMetricsDecorator(t *testing.T) {
	repo := &mocks.DriverRepository{}
	repo.On("UpdateLocation", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("db down"))
	d := &UpdateLocationMetricsDecorator{
		Next:    NewUpdateUseCase(repo, nil, logger.NewNop()),
		Metrics: metrics.NewPrometheusMetrics(prometheus.NewRegistry(), "test"),
	}

	_, err := d.Execute(context.Background(), UpdateInput{DriverID: driverID, Latitude: 1, Longitude: 1})

	assert.EqualError(t, err, "failed to persist location: db down")
}

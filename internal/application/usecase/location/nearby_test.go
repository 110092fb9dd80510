package location

import (
	"context"
	"errors"
	"testing"

	"github.com/origa008/zerodriveless-sub001/internal/application/port/outbound"
	"github.com/origa008/zerodriveless-sub001/internal/application/port/outbound/mocks"
	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNearbyUseCase_Defaults(t *testing.T) {
	index := &mocks.LocationRepository{}
	uc := NewNearbyUseCase(index)
	center := entity.Point{Longitude: -46.63, Latitude: -23.55}
	index.On("GetNearestDrivers", mock.Anything, center, DefaultRadiusKm, DefaultLimit).
		Return([]outbound.DriverLocation{{DriverID: "d1", DistanceKm: 0.4}}, nil)

	out, err := uc.Execute(context.Background(), NearbyInput{Latitude: -23.55, Longitude: -46.63})

	require.NoError(t, err)
	assert.Len(t, out.Drivers, 1)
	assert.Equal(t, "d1", out.Drivers[0].DriverID)
}

func TestNearbyUseCase_ClampsRadiusAndNeverReturnsNil(t *testing.T) {
	index := &mocks.LocationRepository{}
	uc := NewNearbyUseCase(index)
	index.On("GetNearestDrivers", mock.Anything, mock.Anything, MaxRadiusKm, 3).Return(nil, nil)

	out, err := uc.Execute(context.Background(), NearbyInput{Latitude: 1, Longitude: 1, RadiusKm: 500, Limit: 3})

	require.NoError(t, err)
	assert.NotNil(t, out.Drivers)
	assert.Empty(t, out.Drivers)
}

func TestNearbyUseCase_Errors(t *testing.T) {
	index := &mocks.LocationRepository{}
	uc := NewNearbyUseCase(index)

	_, err := uc.Execute(context.Background(), NearbyInput{Latitude: 95})
	assert.ErrorIs(t, err, entity.ErrInvalidLatitude)

	index.On("GetNearestDrivers", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("redis down"))
	_, err = uc.Execute(context.Background(), NearbyInput{Latitude: 1, Longitude: 1})
	assert.ErrorContains(t, err, "redis down")
}

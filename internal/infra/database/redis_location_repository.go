package database

import (
	"context"
	"fmt"

	"github.com/origa008/zerodriveless-sub001/internal/application/port/outbound"
	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
	"github.com/origa008/zerodriveless-sub001/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const DriversGeoKey = "drivers_locations"

type RedisLocationRepository struct {
	client *redis.Client
	logger logger.Logger
}

func NewRedisLocationRepository(client *redis.Client, log logger.Logger) *RedisLocationRepository {
	return &RedisLocationRepository{client: client, logger: log}
}

func (r *RedisLocationRepository) GetNearestDrivers(ctx context.Context, center entity.Point, radiusKm float64, limit int) ([]outbound.DriverLocation, error) {
	r.logger.Debug(ctx, "Redis GeoSearch query",
		logger.Float64("lat", center.Latitude),
		logger.Float64("lng", center.Longitude),
		logger.Float64("radius_km", radiusKm),
		logger.Int("limit", limit),
	)
	cmd := r.client.GeoSearchLocation(ctx, DriversGeoKey,
		&redis.GeoSearchLocationQuery{
			GeoSearchQuery: redis.GeoSearchQuery{
				Latitude:   center.Latitude,
				Longitude:  center.Longitude,
				Radius:     radiusKm,
				RadiusUnit: "km",
				Sort:       "ASC",
				Count:      limit,
			},
			WithCoord: true,
			WithDist:  true,
		},
	)

	results, err := cmd.Result()
	if err != nil {
		r.logger.Error(ctx, "Redis command failed", logger.WithError(err))
		return nil, fmt.Errorf("redis geo search error: %w", err)
	}

	locations := make([]outbound.DriverLocation, len(results))
	for i, res := range results {
		locations[i] = outbound.DriverLocation{
			DriverID:   res.Name,
			Latitude:   res.Latitude,
			Longitude:  res.Longitude,
			DistanceKm: res.Dist,
		}
	}

	return locations, nil
}

func (r *RedisLocationRepository) UpdateLocation(ctx context.Context, driverID string, p entity.Point) error {
	r.logger.Debug(ctx, "Redis GeoAdd",
		logger.String("driver_id", driverID),
		logger.Float64("lat", p.Latitude),
		logger.Float64("lng", p.Longitude),
	)

	err := r.client.GeoAdd(ctx, DriversGeoKey, &redis.GeoLocation{
		Name:      driverID,
		Longitude: p.Longitude,
		Latitude:  p.Latitude,
	}).Err()

	if err != nil {
		r.logger.Error(ctx, "Redis GeoAdd failed", logger.WithError(err))
		return fmt.Errorf("redis geo add error: %w", err)
	}
	return nil
}

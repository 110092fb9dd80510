package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/origa008/zerodriveless-sub001/internal/application/port/outbound"
	"github.com/origa008/zerodriveless-sub001/internal/application/usecase/location"
	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
	"github.com/origa008/zerodriveless-sub001/pkg/logger"
)

// NewLocationIndexHandler mirrors driver.location.updated events into the geo index.
func NewLocationIndexHandler(index outbound.LocationRepository, log logger.Logger) MessageHandler {
	return func(ctx context.Context, msg []byte, headers map[string]interface{}) error {
		var payload location.LocationUpdatedPayload
		if err := json.Unmarshal(msg, &payload); err != nil {
			return fmt.Errorf("%w: %v", ErrPoisonMessage, err)
		}
		if payload.DriverID == "" {
			return fmt.Errorf("%w: missing driver id", ErrPoisonMessage)
		}
		point, err := entity.NewPoint(payload.Longitude, payload.Latitude)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPoisonMessage, err)
		}

		if err := index.UpdateLocation(ctx, payload.DriverID, point); err != nil {
			return err
		}
		log.Debug(ctx, "Driver indexed",
			logger.String("driver_id", payload.DriverID),
			logger.String("geohash", payload.Geohash),
		)
		return nil
	}
}

package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/origa008/zerodriveless-sub001/internal/application/port/outbound"
	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
	"github.com/origa008/zerodriveless-sub001/pkg/events"
	"github.com/origa008/zerodriveless-sub001/pkg/logger"
)

type UpdateUseCaseImpl struct {
	DriverRepository outbound.DriverRepository
	EventDispatcher  events.EventDispatcher
	Logger           logger.Logger

	now func() time.Time
}

func NewUpdateUseCase(repo outbound.DriverRepository, dispatcher events.EventDispatcher, log logger.Logger) *UpdateUseCaseImpl {
	return &UpdateUseCaseImpl{
		DriverRepository: repo,
		EventDispatcher:  dispatcher,
		Logger:           log,
		now:              time.Now,
	}
}

func (uc *UpdateUseCaseImpl) Execute(ctx context.Context, input UpdateInput) (UpdateOutput, error) {
	if err := entity.ValidateID(input.DriverID); err != nil {
		return UpdateOutput{}, err
	}
	point, err := entity.NewPoint(input.Longitude, input.Latitude)
	if err != nil {
		return UpdateOutput{}, err
	}
	now := time.Now
	if uc.now != nil {
		now = uc.now
	}
	at := entity.FixTime(input.RecordedAt, now())

	err = uc.DriverRepository.UpdateLocation(ctx, input.DriverID, point, at)
	if errors.Is(err, entity.ErrStaleLocation) {
		uc.Logger.Debug(ctx, "Stale location ignored",
			logger.String("driver_id", input.DriverID),
			logger.Any("recorded_at", at),
		)
		return UpdateOutput{Success: true, UpdatedAt: at}, nil
	}
	if err != nil {
		return UpdateOutput{}, fmt.Errorf("failed to persist location: %w", err)
	}

	if uc.EventDispatcher != nil {
		evt := events.New(EventLocationUpdated, input.DriverID, LocationUpdatedPayload{
			DriverID:   input.DriverID,
			Longitude:  point.Longitude,
			Latitude:   point.Latitude,
			Geohash:    point.Geohash(),
			RecordedAt: at,
		})
		// the row is already written; a lost event only delays the geo index
		if err := uc.EventDispatcher.Dispatch(ctx, evt); err != nil {
			uc.Logger.Warn(ctx, "Failed to publish location event",
				logger.String("driver_id", input.DriverID),
				logger.WithError(err),
			)
		}
	}

	return UpdateOutput{Success: true, UpdatedAt: at}, nil
}

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
)

type rideRow struct {
	ID             string         `db:"id"`
	PassengerID    string         `db:"passenger_id"`
	DriverID       sql.NullString `db:"driver_id"`
	PickupLng      float64        `db:"pickup_lng"`
	PickupLat      float64        `db:"pickup_lat"`
	DropoffLng     float64        `db:"dropoff_lng"`
	DropoffLat     float64        `db:"dropoff_lat"`
	PickupAddress  string         `db:"pickup_address"`
	DropoffAddress string         `db:"dropoff_address"`
	Status         string         `db:"status"`
	Price          float64        `db:"price"`
	DistanceKm     float64        `db:"distance_km"`
	DurationMin    float64        `db:"duration_min"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

const insertRide = `
	INSERT INTO rides (
		id, passenger_id, driver_id, pickup_location, dropoff_location,
		pickup_address, dropoff_address, status, price, distance_km, duration_min,
		created_at, updated_at
	) VALUES (
		$1, $2, NULLIF($3, '')::uuid, ST_GeomFromEWKT($4), ST_GeomFromEWKT($5),
		$6, $7, $8, $9, $10, $11, $12, $13
	)`

const selectRide = `
	SELECT id, passenger_id, driver_id,
		ST_X(pickup_location) AS pickup_lng, ST_Y(pickup_location) AS pickup_lat,
		ST_X(dropoff_location) AS dropoff_lng, ST_Y(dropoff_location) AS dropoff_lat,
		pickup_address, dropoff_address, status, price, distance_km, duration_min,
		created_at, updated_at
	FROM rides
	WHERE id = $1`

const updateRidePrice = `
	UPDATE rides SET price = $2, updated_at = NOW()
	WHERE id = $1 AND status NOT IN ('completed', 'cancelled')`

const updateRideStatus = `
	UPDATE rides
	SET status = $3, driver_id = COALESCE(NULLIF($4, '')::uuid, driver_id), updated_at = NOW()
	WHERE id = $1 AND status = $2`

type RideRepositoryImpl struct {
	db sqlx.ExtContext
}

func NewRideRepository(db sqlx.ExtContext) *RideRepositoryImpl {
	return &RideRepositoryImpl{db: db}
}

func (r *RideRepositoryImpl) Save(ctx context.Context, ride *entity.Ride) error {
	_, err := r.db.ExecContext(ctx, insertRide,
		ride.ID(),
		ride.PassengerID(),
		ride.DriverID(),
		ride.Pickup().EWKT(),
		ride.Dropoff().EWKT(),
		ride.PickupAddress(),
		ride.DropoffAddress(),
		string(ride.Status()),
		ride.Price(),
		ride.DistanceKm(),
		ride.DurationMin(),
		ride.CreatedAt(),
		ride.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert ride: %w", err)
	}
	return nil
}

func (r *RideRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.Ride, error) {
	var row rideRow
	if err := sqlx.GetContext(ctx, r.db, &row, selectRide, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrRideNotFound
		}
		return nil, fmt.Errorf("failed to load ride %s: %w", id, err)
	}

	return entity.RestoreRide(entity.RideParams{
		ID:             row.ID,
		PassengerID:    row.PassengerID,
		DriverID:       row.DriverID.String,
		Pickup:         entity.Point{Longitude: row.PickupLng, Latitude: row.PickupLat},
		Dropoff:        entity.Point{Longitude: row.DropoffLng, Latitude: row.DropoffLat},
		PickupAddress:  row.PickupAddress,
		DropoffAddress: row.DropoffAddress,
		Price:          row.Price,
		DistanceKm:     row.DistanceKm,
		DurationMin:    row.DurationMin,
		Status:         entity.RideStatus(row.Status),
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	})
}

// UpdatePrice leaves completed and cancelled rides untouched.
func (r *RideRepositoryImpl) UpdatePrice(ctx context.Context, id string, price float64) error {
	res, err := r.db.ExecContext(ctx, updateRidePrice, id, price)
	if err != nil {
		return fmt.Errorf("failed to update ride price: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	exists, err := rowExists(ctx, r.db, "rides", id)
	if err != nil {
		return err
	}
	if !exists {
		return entity.ErrRideNotFound
	}
	return entity.ErrRideClosed
}

// UpdateStatus is a compare-and-set on the status column.
func (r *RideRepositoryImpl) UpdateStatus(ctx context.Context, id string, from, to entity.RideStatus, driverID string) error {
	res, err := r.db.ExecContext(ctx, updateRideStatus, id, string(from), string(to), driverID)
	if err != nil {
		return fmt.Errorf("failed to update ride status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	exists, err := rowExists(ctx, r.db, "rides", id)
	if err != nil {
		return err
	}
	if !exists {
		return entity.ErrRideNotFound
	}
	return entity.ErrInvalidStateTransition
}

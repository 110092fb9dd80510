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

type driverRow struct {
	ID                string          `db:"id"`
	UserID            string          `db:"user_id"`
	Status            string          `db:"status"`
	Name              string          `db:"name"`
	VehicleModel      string          `db:"vehicle_model"`
	VehiclePlate      string          `db:"vehicle_plate"`
	Rating            float64         `db:"rating"`
	Longitude         sql.NullFloat64 `db:"lng"`
	Latitude          sql.NullFloat64 `db:"lat"`
	Geohash           sql.NullString  `db:"geohash"`
	LocationUpdatedAt sql.NullTime    `db:"location_updated_at"`
}

const selectDriver = `
	SELECT d.id, d.user_id, d.status, COALESCE(p.full_name, '') AS name,
		d.vehicle_model, d.vehicle_plate, d.rating,
		ST_X(d.location) AS lng, ST_Y(d.location) AS lat,
		d.geohash, d.location_updated_at
	FROM driver_details d
	LEFT JOIN profiles p ON p.id = d.user_id
	WHERE d.id = $1`

const updateDriverLocation = `
	UPDATE driver_details
	SET location = ST_GeomFromEWKT($2), geohash = $3, location_updated_at = $4
	WHERE id = $1 AND (location_updated_at IS NULL OR location_updated_at <= $4)`

type DriverRepositoryImpl struct {
	db sqlx.ExtContext
}

func NewDriverRepository(db sqlx.ExtContext) *DriverRepositoryImpl {
	return &DriverRepositoryImpl{db: db}
}

func (r *DriverRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.DriverDetails, error) {
	var row driverRow
	if err := sqlx.GetContext(ctx, r.db, &row, selectDriver, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrDriverNotFound
		}
		return nil, fmt.Errorf("failed to load driver %s: %w", id, err)
	}

	d := &entity.DriverDetails{
		ID:           row.ID,
		UserID:       row.UserID,
		Status:       row.Status,
		Name:         row.Name,
		VehicleModel: row.VehicleModel,
		VehiclePlate: row.VehiclePlate,
		Rating:       row.Rating,
		Geohash:      row.Geohash.String,
	}
	if row.Longitude.Valid && row.Latitude.Valid {
		d.Location = &entity.Point{Longitude: row.Longitude.Float64, Latitude: row.Latitude.Float64}
	}
	if row.LocationUpdatedAt.Valid {
		at := row.LocationUpdatedAt.Time
		d.LocationUpdatedAt = &at
	}
	return d, nil
}

// UpdateLocation overwrites the single location row of the driver. A zero row count means
// either the driver is unknown or a newer fix is already stored.
func (r *DriverRepositoryImpl) UpdateLocation(ctx context.Context, driverID string, p entity.Point, at time.Time) error {
	res, err := r.db.ExecContext(ctx, updateDriverLocation, driverID, p.EWKT(), p.Geohash(), at.UTC())
	if err != nil {
		return fmt.Errorf("failed to update driver location: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	exists, err := rowExists(ctx, r.db, "driver_details", driverID)
	if err != nil {
		return err
	}
	if !exists {
		return entity.ErrDriverNotFound
	}
	return entity.ErrStaleLocation
}

// rowExists reports whether table has a row with the given id. table is never user input.
func rowExists(ctx context.Context, q sqlx.QueryerContext, table, id string) (bool, error) {
	var exists bool
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = $1)", table)
	if err := sqlx.GetContext(ctx, q, &exists, query, id); err != nil {
		return false, fmt.Errorf("failed to check %s: %w", table, err)
	}
	return exists, nil
}

package entity

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/mmcloughlin/geohash"
)

const (
	SRID             = 4326
	GeohashPrecision = 9
)

var (
	ErrInvalidLatitude  = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
)

// Point is a WGS84 coordinate. Longitude comes first, matching the storage encoding.
type Point struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
}

func NewPoint(lng, lat float64) (Point, error) {
	p := Point{Longitude: lng, Latitude: lat}
	if err := p.Validate(); err != nil {
		return Point{}, err
	}
	return p, nil
}

func (p Point) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return ErrInvalidLatitude
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return ErrInvalidLongitude
	}
	return nil
}

// EWKT renders the point as SRID=4326;POINT(lng lat).
func (p Point) EWKT() string {
	return fmt.Sprintf("SRID=%d;POINT(%s %s)", SRID,
		strconv.FormatFloat(p.Longitude, 'f', -1, 64),
		strconv.FormatFloat(p.Latitude, 'f', -1, 64),
	)
}

func (p Point) Geohash() string {
	return geohash.EncodeWithPrecision(p.Latitude, p.Longitude, GeohashPrecision)
}

func (p Point) String() string {
	return fmt.Sprintf("(%f, %f)", p.Longitude, p.Latitude)
}

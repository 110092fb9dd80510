package entity

import "errors"

var (
	ErrIDIsRequired = errors.New("id is required")
	ErrInvalidID    = errors.New("invalid id format")

	ErrRideNotFound    = errors.New("ride not found")
	ErrDriverNotFound  = errors.New("driver not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrProfileNotFound = errors.New("profile not found")
)

package entity

import "github.com/google/uuid"

// ValidateID accepts only canonical uuids, the type of every primary key.
func ValidateID(id string) error {
	if id == "" {
		return ErrIDIsRequired
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidID
	}
	return nil
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/origa008/zerodriveless-sub001/internal/application/usecase/ride"
	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// statusFor maps domain errors to HTTP status codes. Anything unknown is a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, entity.ErrRideNotFound),
		errors.Is(err, entity.ErrDriverNotFound),
		errors.Is(err, entity.ErrPostNotFound),
		errors.Is(err, entity.ErrProfileNotFound),
		errors.Is(err, ride.ErrUnknownAction):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrInvalidStateTransition),
		errors.Is(err, entity.ErrRideClosed):
		return http.StatusConflict
	case errors.Is(err, entity.ErrIDIsRequired),
		errors.Is(err, entity.ErrInvalidID),
		errors.Is(err, entity.ErrInvalidLatitude),
		errors.Is(err, entity.ErrInvalidLongitude),
		errors.Is(err, entity.ErrPassengerIsRequired),
		errors.Is(err, entity.ErrBidMustBePositive),
		errors.Is(err, entity.ErrNegativeDistance),
		errors.Is(err, entity.ErrUnknownRideStatus):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeDomainError hides internal failures behind a generic message.
func writeDomainError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		writeError(w, status, "internal server error")
		return
	}
	writeError(w, status, err.Error())
}

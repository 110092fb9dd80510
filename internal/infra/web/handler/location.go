package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/origa008/zerodriveless-sub001/internal/application/usecase/location"
	"github.com/origa008/zerodriveless-sub001/pkg/logger"
)

type Location struct {
	UpdateUseCase location.UpdateUseCase
	NearbyUseCase location.NearbyUseCase
	Logger        logger.Logger
}

func NewLocationHandler(update location.UpdateUseCase, nearby location.NearbyUseCase, log logger.Logger) *Location {
	return &Location{UpdateUseCase: update, NearbyUseCase: nearby, Logger: log}
}

type updateLocationRequest struct {
	Latitude   *float64  `json:"latitude"`
	Longitude  *float64  `json:"longitude"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Update handles PUT /api/v1/drivers/{id}/location.
func (h *Location) Update(w http.ResponseWriter, r *http.Request) {
	var req updateLocationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		writeError(w, http.StatusBadRequest, "latitude and longitude are required")
		return
	}

	out, err := h.UpdateUseCase.Execute(r.Context(), location.UpdateInput{
		DriverID:   chi.URLParam(r, "id"),
		Latitude:   *req.Latitude,
		Longitude:  *req.Longitude,
		RecordedAt: req.RecordedAt,
	})
	if err != nil {
		h.Logger.Warn(r.Context(), "Location update failed", logger.WithError(err))
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Nearby handles GET /api/v1/drivers/nearby?lat=&lng=&radius=&limit=.
func (h *Location) Nearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
	if errLat != nil || errLng != nil {
		writeError(w, http.StatusBadRequest, "lat and lng query parameters are required")
		return
	}
	input := location.NearbyInput{Latitude: lat, Longitude: lng}
	if v := q.Get("radius"); v != "" {
		radius, err := strconv.ParseFloat(v, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "radius must be a number")
			return
		}
		input.RadiusKm = radius
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		input.Limit = limit
	}

	out, err := h.NearbyUseCase.Execute(r.Context(), input)
	if err != nil {
		h.Logger.Error(r.Context(), "Nearby lookup failed", logger.WithError(err))
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

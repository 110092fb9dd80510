package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/origa008/zerodriveless-sub001/internal/application/usecase/ride"
	"github.com/origa008/zerodriveless-sub001/pkg/logger"
)

type Ride struct {
	RequestUseCase    ride.RequestUseCase
	StatusUseCase     ride.StatusUseCase
	UpdateBidUseCase  ride.UpdateBidUseCase
	TransitionUseCase ride.TransitionUseCase
	Logger            logger.Logger
}

func (h *Ride) Request(w http.ResponseWriter, r *http.Request) {
	var input ride.RequestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	out, err := h.RequestUseCase.Execute(r.Context(), input)
	if err != nil {
		h.Logger.Warn(r.Context(), "Ride request failed", logger.WithError(err))
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, out)
}

func (h *Ride) Status(w http.ResponseWriter, r *http.Request) {
	out, err := h.StatusUseCase.Execute(r.Context(), ride.StatusInput{RideID: chi.URLParam(r, "id")})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type updateBidRequest struct {
	Amount float64 `json:"amount"`
}

func (h *Ride) UpdateBid(w http.ResponseWriter, r *http.Request) {
	var req updateBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	out, err := h.UpdateBidUseCase.Execute(r.Context(), ride.UpdateBidInput{
		RideID: chi.URLParam(r, "id"),
		Amount: req.Amount,
	})
	if err != nil {
		h.Logger.Warn(r.Context(), "Bid update failed", logger.WithError(err))
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type transitionRequest struct {
	DriverID string `json:"driver_id"`
}

// Transition handles POST /api/v1/rides/{id}/{action}. Only confirm reads a body.
func (h *Ride) Transition(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	out, err := h.TransitionUseCase.Execute(r.Context(), ride.TransitionInput{
		RideID:   chi.URLParam(r, "id"),
		Action:   ride.Action(chi.URLParam(r, "action")),
		DriverID: req.DriverID,
	})
	if err != nil {
		h.Logger.Warn(r.Context(), "Ride transition failed",
			logger.String("action", chi.URLParam(r, "action")),
			logger.WithError(err),
		)
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

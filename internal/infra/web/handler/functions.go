package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/origa008/zerodriveless-sub001/internal/application/usecase/post"
	"github.com/origa008/zerodriveless-sub001/internal/application/usecase/referral"
	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
	"github.com/origa008/zerodriveless-sub001/internal/infra/web/middleware"
	"github.com/origa008/zerodriveless-sub001/pkg/logger"
)

// Functions serves the two single-purpose mutation endpoints under /functions/v1.
type Functions struct {
	CreateReferralUseCase referral.CreateUseCase
	IncrementLikesUseCase post.IncrementLikesUseCase
	Logger                logger.Logger
}

type referralCreatedResponse struct {
	Success  bool             `json:"success"`
	Referral *entity.Referral `json:"referral"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type likesResponse struct {
	Likes int `json:"likes"`
}

func (h *Functions) CreateReferral(w http.ResponseWriter, r *http.Request) {
	var input referral.CreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	out, err := h.CreateReferralUseCase.Execute(r.Context(), input)
	switch {
	case errors.Is(err, referral.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "Missing required fields")
	case errors.Is(err, referral.ErrInvalidReferralCode):
		writeError(w, http.StatusBadRequest, "Invalid referral code")
	case errors.Is(err, referral.ErrInvalidReferredUser):
		writeError(w, http.StatusBadRequest, "Invalid referred user")
	case errors.Is(err, entity.ErrSelfReferral):
		writeError(w, http.StatusBadRequest, "Cannot refer yourself")
	case err != nil:
		h.Logger.Error(r.Context(), "Create referral failed", logger.WithError(err))
		writeError(w, http.StatusInternalServerError, "Failed to create referral")
	case !out.Created:
		writeJSON(w, http.StatusOK, messageResponse{Message: "Referral already exists"})
	default:
		writeJSON(w, http.StatusOK, referralCreatedResponse{Success: true, Referral: out.Referral})
	}
}

// IncrementPostLikes expects the JWT middleware in front of it.
func (h *Functions) IncrementPostLikes(w http.ResponseWriter, r *http.Request) {
	var input post.IncrementLikesInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Post ID is required")
		return
	}
	input.UserID = middleware.UserIDFromContext(r.Context())

	out, err := h.IncrementLikesUseCase.Execute(r.Context(), input)
	switch {
	case errors.Is(err, post.ErrPostIDRequired):
		writeError(w, http.StatusBadRequest, "Post ID is required")
	case errors.Is(err, entity.ErrPostNotFound):
		writeError(w, http.StatusNotFound, "Post not found")
	case err != nil:
		h.Logger.Error(r.Context(), "Increment likes failed", logger.WithError(err))
		writeError(w, http.StatusInternalServerError, "Failed to increment likes")
	default:
		writeJSON(w, http.StatusOK, likesResponse{Likes: out.Likes})
	}
}

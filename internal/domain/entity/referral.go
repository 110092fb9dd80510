package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSelfReferral         = errors.New("cannot refer yourself")
	ErrRewardMustBePositive = errors.New("reward amount must be greater than zero")
)

type ReferralStatus string

const (
	ReferralStatusPending   ReferralStatus = "pending"
	ReferralStatusCompleted ReferralStatus = "completed"
	ReferralStatusCancelled ReferralStatus = "cancelled"
)

type Referral struct {
	ID           string         `json:"id" db:"id"`
	ReferrerID   string         `json:"referrer_id" db:"referrer_id"`
	ReferredID   string         `json:"referred_id" db:"referred_id"`
	Status       ReferralStatus `json:"status" db:"status"`
	RewardAmount float64        `json:"reward_amount" db:"reward_amount"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
}

// NewReferral creates a pending referral paying reward once the referred user qualifies.
func NewReferral(referrerID, referredID string, reward float64) (*Referral, error) {
	if referrerID == "" || referredID == "" {
		return nil, ErrIDIsRequired
	}
	if referrerID == referredID {
		return nil, ErrSelfReferral
	}
	if reward <= 0 {
		return nil, ErrRewardMustBePositive
	}
	return &Referral{
		ID:           uuid.NewString(),
		ReferrerID:   referrerID,
		ReferredID:   referredID,
		Status:       ReferralStatusPending,
		RewardAmount: reward,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// Profile is the user row a referral code resolves to.
type Profile struct {
	ID           string `json:"id" db:"id"`
	FullName     string `json:"full_name" db:"full_name"`
	AvatarURL    string `json:"avatar_url,omitempty" db:"avatar_url"`
	ReferralCode string `json:"referral_code" db:"referral_code"`
}

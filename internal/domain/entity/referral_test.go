package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReferral(t *testing.T) {
	r, err := NewReferral("referrer", "referred", 10)

	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, ReferralStatusPending, r.Status)
	assert.Equal(t, 10.0, r.RewardAmount)
}

func TestNewReferral_ValidationErrors(t *testing.T) {
	tests := []struct {
		name               string
		referrer, referred string
		reward             float64
		expectedErr        error
	}{
		{"Should return error when referrer is empty", "", "b", 10, ErrIDIsRequired},
		{"Should return error when referred is empty", "a", "", 10, ErrIDIsRequired},
		{"Should return error on self referral", "a", "a", 10, ErrSelfReferral},
		{"Should return error when reward is zero", "a", "b", 0, ErrRewardMustBePositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReferral(tt.referrer, tt.referred, tt.reward)
			assert.ErrorIs(t, err, tt.expectedErr)
			assert.Nil(t, r)
		})
	}
}

package referral

import (
	"context"
	"errors"
	"testing"

	"github.com/origa008/zerodriveless-sub001/internal/application/port/outbound/mocks"
	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
	"github.com/origa008/zerodriveless-sub001/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	referrerID  = "9b2f6c1e-3d4a-4e5b-8c7d-1a2b3c4d5e6f"
	newUserID   = "c0ffee00-1234-4abc-9def-000000000001"
	ghostUserID = "00000000-0000-4000-8000-000000000000"
)

func newUoW() *mocks.UnitOfWork {
	return &mocks.UnitOfWork{
		Profiles:  &mocks.ProfileRepository{},
		Referrals: &mocks.ReferralRepository{},
		Rides:     &mocks.RideRepository{},
	}
}

func TestCreateUseCase_Execute(t *testing.T) {
	//Arrange
	uow := newUoW()
	uc := NewCreateUseCase(uow, 0, logger.NewNop())
	uow.Profiles.On("FindByReferralCode", mock.Anything, "ANA123").Return(&entity.Profile{ID: referrerID}, nil)
	uow.Profiles.On("Exists", mock.Anything, newUserID).Return(true, nil)
	uow.Referrals.On("FindByReferredID", mock.Anything, newUserID).Return(nil, nil)
	uow.Referrals.On("Create", mock.Anything, mock.MatchedBy(func(r *entity.Referral) bool {
		return r.ReferrerID == referrerID && r.ReferredID == newUserID &&
			r.Status == entity.ReferralStatusPending && r.RewardAmount == DefaultRewardAmount
	})).Return(true, nil)

	//Act
	out, err := uc.Execute(context.Background(), CreateInput{ReferrerCode: "ANA123", ReferredID: newUserID})

	//Assert
	require.NoError(t, err)
	assert.True(t, out.Created)
	require.NotNil(t, out.Referral)
	assert.Equal(t, referrerID, out.Referral.ReferrerID)
	uow.Referrals.AssertExpectations(t)
}

func TestCreateUseCase_Execute_Duplicate(t *testing.T) {
	uow := newUoW()
	uc := NewCreateUseCase(uow, 15, logger.NewNop())
	existing := &entity.Referral{ID: "ref-1", ReferrerID: referrerID, ReferredID: newUserID, Status: entity.ReferralStatusPending}
	uow.Profiles.On("FindByReferralCode", mock.Anything, "ANA123").Return(&entity.Profile{ID: referrerID}, nil)
	uow.Profiles.On("Exists", mock.Anything, newUserID).Return(true, nil)
	uow.Referrals.On("FindByReferredID", mock.Anything, newUserID).Return(existing, nil)

	out, err := uc.Execute(context.Background(), CreateInput{ReferrerCode: "ANA123", ReferredID: newUserID})

	require.NoError(t, err)
	assert.False(t, out.Created)
	assert.Equal(t, existing, out.Referral)
	uow.Referrals.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateUseCase_Execute_LostRace(t *testing.T) {
	uow := newUoW()
	uc := NewCreateUseCase(uow, 10, logger.NewNop())
	uow.Profiles.On("FindByReferralCode", mock.Anything, "ANA123").Return(&entity.Profile{ID: referrerID}, nil)
	uow.Profiles.On("Exists", mock.Anything, newUserID).Return(true, nil)
	uow.Referrals.On("FindByReferredID", mock.Anything, newUserID).Return(nil, nil)
	uow.Referrals.On("Create", mock.Anything, mock.Anything).Return(false, nil)

	out, err := uc.Execute(context.Background(), CreateInput{ReferrerCode: "ANA123", ReferredID: newUserID})

	require.NoError(t, err)
	assert.False(t, out.Created)
}

func TestCreateUseCase_Execute_Rejections(t *testing.T) {
	tests := []struct {
		name        string
		input       CreateInput
		setup       func(u *mocks.UnitOfWork)
		expectedErr error
	}{
		{
			name:        "Should reject missing code",
			input:       CreateInput{ReferredID: newUserID},
			setup:       func(u *mocks.UnitOfWork) {},
			expectedErr: ErrMissingFields,
		},
		{
			name:  "Should reject unknown code",
			input: CreateInput{ReferrerCode: "NOPE", ReferredID: newUserID},
			setup: func(u *mocks.UnitOfWork) {
				u.Profiles.On("FindByReferralCode", mock.Anything, "NOPE").Return(nil, entity.ErrProfileNotFound)
			},
			expectedErr: ErrInvalidReferralCode,
		},
		{
			name:  "Should reject unknown referred user",
			input: CreateInput{ReferrerCode: "ANA123", ReferredID: ghostUserID},
			setup: func(u *mocks.UnitOfWork) {
				u.Profiles.On("FindByReferralCode", mock.Anything, "ANA123").Return(&entity.Profile{ID: referrerID}, nil)
				u.Profiles.On("Exists", mock.Anything, ghostUserID).Return(false, nil)
			},
			expectedErr: ErrInvalidReferredUser,
		},
		{
			name:  "Should reject a referred id that is not a uuid",
			input: CreateInput{ReferrerCode: "ANA123", ReferredID: "abc"},
			setup: func(u *mocks.UnitOfWork) {
				u.Profiles.On("FindByReferralCode", mock.Anything, "ANA123").Return(&entity.Profile{ID: referrerID}, nil)
			},
			expectedErr: ErrInvalidReferredUser,
		},
		{
			name:  "Should reject self referral",
			input: CreateInput{ReferrerCode: "ANA123", ReferredID: referrerID},
			setup: func(u *mocks.UnitOfWork) {
				u.Profiles.On("FindByReferralCode", mock.Anything, "ANA123").Return(&entity.Profile{ID: referrerID}, nil)
				u.Profiles.On("Exists", mock.Anything, referrerID).Return(true, nil)
			},
			expectedErr: entity.ErrSelfReferral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uow := newUoW()
			tt.setup(uow)
			uc := NewCreateUseCase(uow, 10, logger.NewNop())

			_, err := uc.Execute(context.Background(), tt.input)

			assert.ErrorIs(t, err, tt.expectedErr)
			assert.True(t, isRejection(err))
			uow.Referrals.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			if tt.input.ReferredID == "abc" {
				uow.Profiles.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestCreateUseCase_Execute_StoreFailure(t *testing.T) {
	uow := newUoW()
	uc := NewCreateUseCase(uow, 10, logger.NewNop())
	uow.Profiles.On("FindByReferralCode", mock.Anything, "ANA123").Return(nil, errors.New("connection refused"))

	out, err := uc.Execute(context.Background(), CreateInput{ReferrerCode: "ANA123", ReferredID: "u"})

	assert.ErrorContains(t, err, "connection refused")
	assert.False(t, isRejection(err))
	assert.Equal(t, "failed", outcome(out, err))
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "created", outcome(CreateOutput{Created: true}, nil))
	assert.Equal(t, "duplicate", outcome(CreateOutput{}, nil))
	assert.Equal(t, "rejected", outcome(CreateOutput{}, ErrInvalidReferralCode))
}

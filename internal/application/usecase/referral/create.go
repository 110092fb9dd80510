package referral

import (
	"context"
	"errors"
	"fmt"

	"github.com/origa008/zerodriveless-sub001/internal/application/port/outbound"
	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
	"github.com/origa008/zerodriveless-sub001/pkg/logger"
)

const DefaultRewardAmount = 10.0

var (
	ErrMissingFields       = errors.New("missing required fields")
	ErrInvalidReferralCode = errors.New("invalid referral code")
	ErrInvalidReferredUser = errors.New("invalid referred user")
)

type CreateUseCase interface {
	Execute(ctx context.Context, input CreateInput) (CreateOutput, error)
}

type CreateUseCaseImpl struct {
	UnitOfWork   outbound.UnitOfWork
	RewardAmount float64
	Logger       logger.Logger
}

func NewCreateUseCase(uow outbound.UnitOfWork, reward float64, log logger.Logger) *CreateUseCaseImpl {
	if reward <= 0 {
		reward = DefaultRewardAmount
	}
	return &CreateUseCaseImpl{UnitOfWork: uow, RewardAmount: reward, Logger: log}
}

func (uc *CreateUseCaseImpl) Execute(ctx context.Context, input CreateInput) (CreateOutput, error) {
	if input.ReferrerCode == "" || input.ReferredID == "" {
		return CreateOutput{}, ErrMissingFields
	}

	var output CreateOutput
	err := uc.UnitOfWork.Do(ctx, func(p outbound.RepositoryProvider) error {
		referrer, err := p.Profile().FindByReferralCode(ctx, input.ReferrerCode)
		if errors.Is(err, entity.ErrProfileNotFound) {
			return ErrInvalidReferralCode
		}
		if err != nil {
			return fmt.Errorf("referrer lookup failed: %w", err)
		}

		if entity.ValidateID(input.ReferredID) != nil {
			return ErrInvalidReferredUser
		}
		exists, err := p.Profile().Exists(ctx, input.ReferredID)
		if err != nil {
			return fmt.Errorf("referred user lookup failed: %w", err)
		}
		if !exists {
			return ErrInvalidReferredUser
		}
		if referrer.ID == input.ReferredID {
			return entity.ErrSelfReferral
		}

		existing, err := p.Referral().FindByReferredID(ctx, input.ReferredID)
		if err != nil {
			return fmt.Errorf("referral lookup failed: %w", err)
		}
		if existing != nil {
			output = CreateOutput{Created: false, Referral: existing}
			return nil
		}

		referral, err := entity.NewReferral(referrer.ID, input.ReferredID, uc.RewardAmount)
		if err != nil {
			return err
		}
		created, err := p.Referral().Create(ctx, referral)
		if err != nil {
			return fmt.Errorf("failed to create referral: %w", err)
		}
		if !created {
			// lost a race with a concurrent request for the same user
			output = CreateOutput{Created: false}
			return nil
		}
		output = CreateOutput{Created: true, Referral: referral}
		return nil
	})
	if err != nil {
		return CreateOutput{}, err
	}

	if output.Created {
		uc.Logger.Info(ctx, "Referral created",
			logger.String("referral_id", output.Referral.ID),
			logger.String("referrer_id", output.Referral.ReferrerID),
			logger.String("referred_id", output.Referral.ReferredID),
		)
	}
	return output, nil
}

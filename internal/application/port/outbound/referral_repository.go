package outbound

import (
	"context"

	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
)

type ProfileRepository interface {
	FindByReferralCode(ctx context.Context, code string) (*entity.Profile, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type ReferralRepository interface {
	// FindByReferredID returns nil, nil when the user was never referred.
	FindByReferredID(ctx context.Context, referredID string) (*entity.Referral, error)
	// Create reports false when a referral for the same referred user already exists.
	Create(ctx context.Context, referral *entity.Referral) (bool, error)
}

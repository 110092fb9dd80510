package outbound

import (
	"context"
)

// RepositoryProvider exposes the repositories bound to the running transaction.
type RepositoryProvider interface {
	Profile() ProfileRepository
	Referral() ReferralRepository
	Ride() RideRepository
}

// UnitOfWork runs fn inside one transaction; fn's error rolls it back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(provider RepositoryProvider) error) error
}

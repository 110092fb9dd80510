package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/origa008/zerodriveless-sub001/internal/application/port/outbound"
)

type RepositoryProviderImpl struct {
	tx *sqlx.Tx
}

func (p *RepositoryProviderImpl) Profile() outbound.ProfileRepository {
	return NewProfileRepository(p.tx)
}

func (p *RepositoryProviderImpl) Referral() outbound.ReferralRepository {
	return NewReferralRepository(p.tx)
}

func (p *RepositoryProviderImpl) Ride() outbound.RideRepository {
	return NewRideRepository(p.tx)
}

type UnitOfWorkImpl struct {
	db *sqlx.DB
}

func NewUnitOfWork(db *sqlx.DB) *UnitOfWorkImpl {
	return &UnitOfWorkImpl{db: db}
}

func (u *UnitOfWorkImpl) Do(ctx context.Context, fn func(provider outbound.RepositoryProvider) error) error {
	tx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&RepositoryProviderImpl{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %w, rb err: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

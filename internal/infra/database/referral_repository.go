package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
)

type ProfileRepositoryImpl struct {
	db sqlx.ExtContext
}

func NewProfileRepository(db sqlx.ExtContext) *ProfileRepositoryImpl {
	return &ProfileRepositoryImpl{db: db}
}

func (r *ProfileRepositoryImpl) FindByReferralCode(ctx context.Context, code string) (*entity.Profile, error) {
	var p entity.Profile
	err := sqlx.GetContext(ctx, r.db, &p,
		`SELECT id, full_name, COALESCE(avatar_url, '') AS avatar_url, referral_code
		FROM profiles WHERE referral_code = $1`, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile by referral code: %w", err)
	}
	return &p, nil
}

func (r *ProfileRepositoryImpl) Exists(ctx context.Context, id string) (bool, error) {
	return rowExists(ctx, r.db, "profiles", id)
}

type ReferralRepositoryImpl struct {
	db sqlx.ExtContext
}

func NewReferralRepository(db sqlx.ExtContext) *ReferralRepositoryImpl {
	return &ReferralRepositoryImpl{db: db}
}

func (r *ReferralRepositoryImpl) FindByReferredID(ctx context.Context, referredID string) (*entity.Referral, error) {
	var ref entity.Referral
	err := sqlx.GetContext(ctx, r.db, &ref,
		`SELECT id, referrer_id, referred_id, status, reward_amount, created_at
		FROM referrals WHERE referred_id = $1`, referredID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find referral: %w", err)
	}
	return &ref, nil
}

func (r *ReferralRepositoryImpl) Create(ctx context.Context, ref *entity.Referral) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO referrals (id, referrer_id, referred_id, status, reward_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (referred_id) DO NOTHING`,
		ref.ID, ref.ReferrerID, ref.ReferredID, string(ref.Status), ref.RewardAmount, ref.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert referral: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

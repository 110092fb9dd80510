// Package mocks holds testify mocks of the outbound ports.
package mocks

import (
	"context"
	"time"

	"github.com/origa008/zerodriveless-sub001/internal/application/port/outbound"
	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

type DriverRepository struct{ mock.Mock }

func (m *DriverRepository) FindByID(ctx context.Context, id string) (*entity.DriverDetails, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*entity.DriverDetails)
	return d, args.Error(1)
}

func (m *DriverRepository) UpdateLocation(ctx context.Context, driverID string, p entity.Point, at time.Time) error {
	return m.Called(ctx, driverID, p, at).Error(0)
}

type LocationRepository struct{ mock.Mock }

func (m *LocationRepository) GetNearestDrivers(ctx context.Context, center entity.Point, radiusKm float64, limit int) ([]outbound.DriverLocation, error) {
	args := m.Called(ctx, center, radiusKm, limit)
	l, _ := args.Get(0).([]outbound.DriverLocation)
	return l, args.Error(1)
}

func (m *LocationRepository) UpdateLocation(ctx context.Context, driverID string, p entity.Point) error {
	return m.Called(ctx, driverID, p).Error(0)
}

type RideRepository struct{ mock.Mock }

func (m *RideRepository) Save(ctx context.Context, ride *entity.Ride) error {
	return m.Called(ctx, ride).Error(0)
}

func (m *RideRepository) FindByID(ctx context.Context, id string) (*entity.Ride, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*entity.Ride)
	return r, args.Error(1)
}

func (m *RideRepository) UpdatePrice(ctx context.Context, id string, price float64) error {
	return m.Called(ctx, id, price).Error(0)
}

func (m *RideRepository) UpdateStatus(ctx context.Context, id string, from, to entity.RideStatus, driverID string) error {
	return m.Called(ctx, id, from, to, driverID).Error(0)
}

type ProfileRepository struct{ mock.Mock }

func (m *ProfileRepository) FindByReferralCode(ctx context.Context, code string) (*entity.Profile, error) {
	args := m.Called(ctx, code)
	p, _ := args.Get(0).(*entity.Profile)
	return p, args.Error(1)
}

func (m *ProfileRepository) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type ReferralRepository struct{ mock.Mock }

func (m *ReferralRepository) FindByReferredID(ctx context.Context, referredID string) (*entity.Referral, error) {
	args := m.Called(ctx, referredID)
	r, _ := args.Get(0).(*entity.Referral)
	return r, args.Error(1)
}

func (m *ReferralRepository) Create(ctx context.Context, referral *entity.Referral) (bool, error) {
	args := m.Called(ctx, referral)
	return args.Bool(0), args.Error(1)
}

type PostRepository struct{ mock.Mock }

func (m *PostRepository) IncrementLikes(ctx context.Context, postID string) (*entity.Post, error) {
	args := m.Called(ctx, postID)
	p, _ := args.Get(0).(*entity.Post)
	return p, args.Error(1)
}

// UnitOfWork runs fn directly against the configured repositories.
type UnitOfWork struct {
	Profiles  *ProfileRepository
	Referrals *ReferralRepository
	Rides     *RideRepository
}

func (u *UnitOfWork) Do(ctx context.Context, fn func(provider outbound.RepositoryProvider) error) error {
	return fn(u)
}

func (u *UnitOfWork) Profile() outbound.ProfileRepository   { return u.Profiles }
func (u *UnitOfWork) Referral() outbound.ReferralRepository { return u.Referrals }
func (u *UnitOfWork) Ride() outbound.RideRepository         { return u.Rides }

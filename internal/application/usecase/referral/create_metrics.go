package referral

import (
	"context"
	"errors"
	"time"

	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
	"github.com/origa008/zerodriveless-sub001/pkg/metrics"
)

type CreateReferralMetricsDecorator struct {
	Next    CreateUseCase
	Metrics metrics.Metrics
}

func (d *CreateReferralMetricsDecorator) Execute(ctx context.Context, input CreateInput) (CreateOutput, error) {
	start := time.Now()
	output, err := d.Next.Execute(ctx, input)
	d.Metrics.RecordReferral(outcome(output, err))
	d.Metrics.RecordUseCaseExecution("CreateReferral", err == nil || isRejection(err), time.Since(start))
	return output, err
}

func outcome(out CreateOutput, err error) string {
	switch {
	case err == nil && out.Created:
		return "created"
	case err == nil:
		return "duplicate"
	case isRejection(err):
		return "rejected"
	default:
		return "failed"
	}
}

func isRejection(err error) bool {
	return errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrInvalidReferralCode) ||
		errors.Is(err, ErrInvalidReferredUser) ||
		errors.Is(err, entity.ErrSelfReferral)
}

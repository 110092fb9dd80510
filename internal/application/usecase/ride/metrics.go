package ride

import (
	"context"
	"time"

	"github.com/origa008/zerodriveless-sub001/pkg/metrics"
)

type UpdateBidMetricsDecorator struct {
	Next    UpdateBidUseCase
	Metrics metrics.Metrics
}

func (d *UpdateBidMetricsDecorator) Execute(ctx context.Context, input UpdateBidInput) (Output, error) {
	start := time.Now()
	output, err := d.Next.Execute(ctx, input)
	d.Metrics.RecordUseCaseExecution("UpdateBid", err == nil, time.Since(start))
	return output, err
}

type TransitionMetricsDecorator struct {
	Next    TransitionUseCase
	Metrics metrics.Metrics
}

func (d TransitionMetricsDecorator) Execute(ctx context.Context, input TransitionInput) (Output, error) {
	start := time.Now()
	output, err := d.Next.Execute(ctx, input)
	if err == nil {
		d.Metrics.RecordRideTransition(string(output.Status))
	}
	d.Metrics.RecordUseCaseExecution("TransitionRide", err == nil, time.Since(start))
	return output, err
}

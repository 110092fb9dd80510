package location

import (
	"context"
	"time"

	"github.com/origa008/zerodriveless-sub001/pkg/metrics"
)

type UpdateLocationMetricsDecorator struct {
	Next    UpdateUseCase
	Metrics metrics.Metrics
}

func (d *UpdateLocationMetricsDecorator) Execute(ctx context.Context, input UpdateInput) (UpdateOutput, error) {
	start := time.Now()
	output, err := d.Next.Execute(ctx, input)
	status := "success"
	if err != nil {
		status = "failure"
	}
	d.Metrics.RecordLocationUpdate(status)
	d.Metrics.RecordUseCaseExecution("UpdateDriverLocation", err == nil, time.Since(start))
	return output, err
}

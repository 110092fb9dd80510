package metrics

import "time"

type Metrics interface {
	// Business
	RecordLocationUpdate(status string)
	RecordRideTransition(status string)
	RecordReferral(outcome string)
	RecordUseCaseExecution(useCaseName string, success bool, duration time.Duration)

	// Infrastructure (HTTP)
	ObserveHTTPRequestDuration(method, path, statusCode string, duration float64)

	// Event processing
	IncEventsProcessed(handler, status string)
	IncDuplicateEvent(handler string)
}

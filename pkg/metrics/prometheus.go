package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Prometheus struct {
	locationUpdates *prometheus.CounterVec
	rideTransitions *prometheus.CounterVec
	referrals       *prometheus.CounterVec
	useCaseTotal    *prometheus.CounterVec
	useCaseDuration *prometheus.HistogramVec
	httpDuration    *prometheus.HistogramVec
	eventsProcessed *prometheus.CounterVec
	duplicateEvents *prometheus.CounterVec
}

func NewPrometheusMetrics(reg prometheus.Registerer, serviceName string) *Prometheus {
	m := &Prometheus{
		locationUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "ride_driver_location_updates_total",
			Help:        "Driver location writes by outcome.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"status"}),
		rideTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "ride_status_transitions_total",
			Help:        "Ride status changes by target status.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"status"}),
		referrals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "ride_referrals_total",
			Help:        "Referral requests by outcome.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"outcome"}),
		useCaseTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "app_usecase_total",
			Help:        "Total number of Use Case executions.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"use_case", "status"}),
		useCaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "app_usecase_duration_seconds",
			Help:        "Use Case execution latency.",
			Buckets:     []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"use_case", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "app_http_duration_seconds",
			Help:        "Duration of HTTP requests.",
			Buckets:     []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"method", "path", "status_code"}),
		eventsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "app_events_processed_total",
			Help:        "Consumed events by handler and outcome.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"handler", "status"}),
		duplicateEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "app_events_duplicate_total",
			Help:        "Events dropped by the idempotency guard.",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"handler"}),
	}

	reg.MustRegister(
		m.locationUpdates,
		m.rideTransitions,
		m.referrals,
		m.useCaseTotal,
		m.useCaseDuration,
		m.httpDuration,
		m.eventsProcessed,
		m.duplicateEvents,
	)
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return m
}

func (p *Prometheus) RecordLocationUpdate(status string) {
	p.locationUpdates.WithLabelValues(status).Inc()
}

func (p *Prometheus) RecordRideTransition(status string) {
	p.rideTransitions.WithLabelValues(status).Inc()
}

func (p *Prometheus) RecordReferral(outcome string) {
	p.referrals.WithLabelValues(outcome).Inc()
}

func (p *Prometheus) RecordUseCaseExecution(useCase string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	p.useCaseTotal.WithLabelValues(useCase, status).Inc()
	p.useCaseDuration.WithLabelValues(useCase, status).Observe(duration.Seconds())
}

func (p *Prometheus) ObserveHTTPRequestDuration(method, path, code string, duration float64) {
	p.httpDuration.WithLabelValues(method, path, code).Observe(duration)
}

func (p *Prometheus) IncEventsProcessed(handler, status string) {
	p.eventsProcessed.WithLabelValues(handler, status).Inc()
}

func (p *Prometheus) IncDuplicateEvent(handler string) {
	p.duplicateEvents.WithLabelValues(handler).Inc()
}

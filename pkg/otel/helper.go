package otel

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// InjectHTTPHeaders writes the trace context of ctx into h.
func InjectHTTPHeaders(ctx context.Context, h http.Header) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(h))
}

// ExtractHTTPHeaders returns parent enriched with the trace context carried by h.
func ExtractHTTPHeaders(parent context.Context, h http.Header) context.Context {
	if len(h) == 0 {
		return parent
	}
	return otel.GetTextMapPropagator().Extract(parent, propagation.HeaderCarrier(h))
}

package otel

import (
	"context"
	"sort"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
)

// MessageHeaders adapts the headers of an AMQP message to a propagation.TextMapCarrier.
// Brokers and other clients may hand back text values as []byte, so both are read.
type MessageHeaders amqp.Table

func (h MessageHeaders) Get(key string) string {
	switch v := h[key].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func (h MessageHeaders) Set(key, value string) {
	h[key] = value
}

// Keys lists the header names in order.
func (h MessageHeaders) Keys() []string {
	keys := make([]string, 0, len(h))
	for k := range h {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// InjectAMQPHeaders writes the trace context of ctx into headers, allocating them when nil.
func InjectAMQPHeaders(ctx context.Context, headers amqp.Table) amqp.Table {
	if headers == nil {
		headers = amqp.Table{}
	}
	otel.GetTextMapPropagator().Inject(ctx, MessageHeaders(headers))
	return headers
}

// ExtractAMQPHeaders returns parent enriched with the trace context carried by headers.
func ExtractAMQPHeaders(parent context.Context, headers amqp.Table) context.Context {
	if len(headers) == 0 {
		return parent
	}
	return otel.GetTextMapPropagator().Extract(parent, MessageHeaders(headers))
}

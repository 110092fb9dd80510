package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/origa008/zerodriveless-sub001/pkg/events"
	carrier "github.com/origa008/zerodriveless-sub001/pkg/otel"
	amqp "github.com/rabbitmq/amqp091-go"
)

const DefaultExchange = "ridehail.events"

// Publisher is the part of *amqp.Channel the dispatcher needs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Dispatcher publishes domain events on a topic exchange, routed by event name.
type Dispatcher struct {
	Publisher Publisher
	Exchange  string
}

func NewDispatcher(p Publisher, exchange string) *Dispatcher {
	if exchange == "" {
		exchange = DefaultExchange
	}
	return &Dispatcher{Publisher: p, Exchange: exchange}
}

func (ed *Dispatcher) Dispatch(ctx context.Context, event events.Event) error {
	headers := carrier.InjectAMQPHeaders(ctx, nil)
	headers[HeaderEventID] = event.GetID()
	headers[HeaderAggregateID] = event.GetAggregateID()
	headers[HeaderEventName] = event.GetName()

	payload, err := json.Marshal(event.GetPayload())
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", event.GetName(), err)
	}

	err = ed.Publisher.PublishWithContext(
		ctx,
		ed.Exchange,
		event.GetName(),
		false,
		false,
		amqp.Publishing{
			Headers:      headers,
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.GetID(),
			Timestamp:    event.GetDateTime(),
			Body:         payload,
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.GetName(), err)
	}
	return nil
}

// DeclareExchange creates the durable topic exchange events are published to.
func DeclareExchange(ch *amqp.Channel, exchange string) error {
	return ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil)
}

// publishTimeout bounds a publish when the caller context has no deadline.
const publishTimeout = 5 * time.Second

// TimeoutDispatcher bounds every publish so a stalled broker cannot block the caller.
type TimeoutDispatcher struct {
	Next events.EventDispatcher
}

func (d TimeoutDispatcher) Dispatch(ctx context.Context, event events.Event) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, publishTimeout)
		defer cancel()
	}
	return d.Next.Dispatch(ctx, event)
}

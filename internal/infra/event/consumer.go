package event

import (
	"context"
	"fmt"

	"github.com/origa008/zerodriveless-sub001/pkg/logger"
	carrier "github.com/origa008/zerodriveless-sub001/pkg/otel"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type Consumer struct {
	Conn       *amqp.Connection
	Exchange   string
	Queue      string
	RoutingKey string
	Prefetch   int
	Handler    MessageHandler
	Logger     logger.Logger
}

func NewConsumer(conn *amqp.Connection, exchange, queue, routingKey string, handler MessageHandler, l logger.Logger) *Consumer {
	return &Consumer{
		Conn:       conn,
		Exchange:   exchange,
		Queue:      queue,
		RoutingKey: routingKey,
		Prefetch:   10,
		Handler:    handler,
		Logger:     l,
	}
}

// Start consumes until ctx is cancelled or the channel closes.
func (c *Consumer) Start(ctx context.Context) error {
	ch, err := c.Conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := c.setupTopology(ch); err != nil {
		return fmt.Errorf("error when configuring topology: %w", err)
	}

	msgs, err := ch.ConsumeWithContext(ctx, c.Queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	c.Logger.Info(ctx, "Waiting for messages", logger.String("queue", c.Queue))
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("delivery channel closed for queue %s", c.Queue)
			}
			c.HandleDelivery(ctx, d)
		}
	}
}

// HandleDelivery runs the handler for one delivery and settles it. Failed messages are
// dropped without requeue since the handler chain already retried them.
func (c *Consumer) HandleDelivery(ctx context.Context, d amqp.Delivery) {
	ctx = carrier.ExtractAMQPHeaders(ctx, d.Headers)
	ctx, span := otel.GetTracerProvider().Tracer("worker-tracer").Start(ctx, "Consume "+d.RoutingKey,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.destination", c.Queue),
			attribute.String("messaging.message_id", d.MessageId),
		))
	defer span.End()

	headers := map[string]interface{}(d.Headers)
	if headers == nil {
		headers = map[string]interface{}{}
	}

	if err := c.Handler(ctx, d.Body, headers); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.Logger.Error(ctx, "Message processing failed",
			logger.String("queue", c.Queue),
			logger.String("message_id", d.MessageId),
			logger.WithError(err),
		)
		if nackErr := d.Nack(false, false); nackErr != nil {
			c.Logger.Error(ctx, "Failed to nack message", logger.WithError(nackErr))
		}
		return
	}

	if err := d.Ack(false); err != nil {
		c.Logger.Error(ctx, "Failed to ack message", logger.WithError(err))
	}
}

func (c *Consumer) setupTopology(ch *amqp.Channel) error {
	if err := DeclareExchange(ch, c.Exchange); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(c.Queue, true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.QueueBind(c.Queue, c.RoutingKey, c.Exchange, false, nil); err != nil {
		return err
	}
	return ch.Qos(c.Prefetch, 0, false)
}

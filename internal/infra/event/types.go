package event

import (
	"context"
	"errors"
)

const (
	HeaderEventID     = "x-event-id"
	HeaderAggregateID = "x-aggregate-id"
	HeaderEventName   = "x-event-name"
)

// ErrPoisonMessage marks a message that can never be processed. Retrying it is pointless.
var ErrPoisonMessage = errors.New("poison message")

type MessageHandler func(ctx context.Context, msg []byte, headers map[string]interface{}) error

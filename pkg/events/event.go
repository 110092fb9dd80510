package events

import (
	"time"

	"github.com/google/uuid"
)

// Base is a plain Event keyed by the aggregate it describes.
type Base struct {
	id          string
	name        string
	aggregateID string
	dateTime    time.Time
	payload     interface{}
}

func New(name, aggregateID string, payload interface{}) *Base {
	return &Base{
		id:          uuid.NewString(),
		name:        name,
		aggregateID: aggregateID,
		dateTime:    time.Now().UTC(),
		payload:     payload,
	}
}

func (e *Base) GetName() string                { return e.name }
func (e *Base) GetID() string                  { return e.id }
func (e *Base) GetAggregateID() string         { return e.aggregateID }
func (e *Base) GetDateTime() time.Time         { return e.dateTime }
func (e *Base) GetPayload() interface{}        { return e.payload }
func (e *Base) SetPayload(payload interface{}) { e.payload = payload }

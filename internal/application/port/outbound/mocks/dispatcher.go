package mocks

import (
	"context"

	"github.com/origa008/zerodriveless-sub001/pkg/events"
	"github.com/stretchr/testify/mock"
)

type EventDispatcher struct{ mock.Mock }

func (m *EventDispatcher) Dispatch(ctx context.Context, event events.Event) error {
	return m.Called(ctx, event).Error(0)
}

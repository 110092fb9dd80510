package ride

import (
	"context"
)

type RequestUseCase interface {
	Execute(ctx context.Context, input RequestInput) (Output, error)
}

type UpdateBidUseCase interface {
	Execute(ctx context.Context, input UpdateBidInput) (Output, error)
}

type StatusUseCase interface {
	Execute(ctx context.Context, input StatusInput) (StatusOutput, error)
}

type TransitionUseCase interface {
	Execute(ctx context.Context, input TransitionInput) (Output, error)
}

package location

import "context"

type UpdateUseCase interface {
	Execute(ctx context.Context, input UpdateInput) (UpdateOutput, error)
}

type NearbyUseCase interface {
	Execute(ctx context.Context, input NearbyInput) (NearbyOutput, error)
}

package outbound

import (
	"context"

	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
)

type PostRepository interface {
	IncrementLikes(ctx context.Context, postID string) (*entity.Post, error)
}

package post

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/origa008/zerodriveless-sub001/internal/application/port/outbound"
	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
	"github.com/origa008/zerodriveless-sub001/pkg/logger"
	"github.com/origa008/zerodriveless-sub001/pkg/metrics"
)

var ErrPostIDRequired = errors.New("post id is required")

type IncrementLikesInput struct {
	PostID string `json:"postId"`
	// UserID is the authenticated caller, kept for the audit log.
	UserID string `json:"-"`
}

type IncrementLikesOutput struct {
	Likes int `json:"likes"`
}

type IncrementLikesUseCase interface {
	Execute(ctx context.Context, input IncrementLikesInput) (IncrementLikesOutput, error)
}

type IncrementLikesUseCaseImpl struct {
	Posts  outbound.PostRepository
	Logger logger.Logger
}

func NewIncrementLikesUseCase(posts outbound.PostRepository, log logger.Logger) *IncrementLikesUseCaseImpl {
	return &IncrementLikesUseCaseImpl{Posts: posts, Logger: log}
}

func (uc *IncrementLikesUseCaseImpl) Execute(ctx context.Context, input IncrementLikesInput) (IncrementLikesOutput, error) {
	if input.PostID == "" {
		return IncrementLikesOutput{}, ErrPostIDRequired
	}
	if entity.ValidateID(input.PostID) != nil {
		// no post can have this id
		return IncrementLikesOutput{}, entity.ErrPostNotFound
	}

	post, err := uc.Posts.IncrementLikes(ctx, input.PostID)
	if errors.Is(err, entity.ErrPostNotFound) {
		return IncrementLikesOutput{}, err
	}
	if err != nil {
		return IncrementLikesOutput{}, fmt.Errorf("failed to increment likes: %w", err)
	}

	uc.Logger.Debug(ctx, "Post liked",
		logger.String("post_id", post.ID),
		logger.String("user_id", input.UserID),
		logger.Int("likes", post.Likes),
	)
	return IncrementLikesOutput{Likes: post.Likes}, nil
}

type IncrementLikesMetricsDecorator struct {
	Next    IncrementLikesUseCase
	Metrics metrics.Metrics
}

func (d IncrementLikesMetricsDecorator) Execute(ctx context.Context, input IncrementLikesInput) (IncrementLikesOutput, error) {
	start := time.Now()
	out, err := d.Next.Execute(ctx, input)
	d.Metrics.RecordUseCaseExecution("IncrementPostLikes", err == nil, time.Since(start))
	return out, err
}

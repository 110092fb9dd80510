package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/origa008/zerodriveless-sub001/internal/domain/entity"
)

type PostRepositoryImpl struct {
	db sqlx.ExtContext
}

func NewPostRepository(db sqlx.ExtContext) *PostRepositoryImpl {
	return &PostRepositoryImpl{db: db}
}

// IncrementLikes bumps the counter in a single statement so concurrent likes never race.
func (r *PostRepositoryImpl) IncrementLikes(ctx context.Context, postID string) (*entity.Post, error) {
	var p entity.Post
	err := sqlx.GetContext(ctx, r.db, &p,
		`UPDATE posts SET likes = likes + 1 WHERE id = $1
		RETURNING id, author_id, content, likes, comments, created_at`, postID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to increment likes: %w", err)
	}
	return &p, nil
}

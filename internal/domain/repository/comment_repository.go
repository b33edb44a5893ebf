package repository

import (
	"context"

	"github.com/screenlog/movie-catalog-api/internal/domain/entity"
)

// CommentRepository defines the interface for comment-related database
// operations. ListTopLevel returns parent-less comments with their direct
// replies eagerly attached.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	ListTopLevel(ctx context.Context, movieID string, skip, limit int, newestFirst bool) ([]*entity.Comment, error)
}

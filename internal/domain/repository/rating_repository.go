package repository

import (
	"context"

	"github.com/screenlog/movie-catalog-api/internal/domain/entity"
)

// RatingRepository defines the interface for rating-related database
// operations. Upsert converges on one row per (user, movie) pair; the
// storage layer enforces the uniqueness constraint.
type RatingRepository interface {
	Upsert(ctx context.Context, r *entity.Rating) error
	ListByMovie(ctx context.Context, movieID string, skip, limit int, score *int) ([]*entity.Rating, error)
	AverageScore(ctx context.Context, movieID string) (*float64, error)
}

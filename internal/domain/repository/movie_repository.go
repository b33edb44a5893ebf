package repository

import (
	"context"

	"github.com/screenlog/movie-catalog-api/internal/domain/entity"
)

// Movie list sort modes.
const (
	SortMostRecent         = "most_recent"
	SortMostRated          = "most_rated"
	SortMostRatedAndRecent = "most_rated_and_recent"
)

// MovieListParams narrows and orders a movie listing. Search is a
// case-insensitive substring match over title and description. An empty
// SortBy keeps insertion order.
type MovieListParams struct {
	Skip   int
	Limit  int
	Search string
	SortBy string
}

// MovieRepository defines the interface for movie-related database operations.
type MovieRepository interface {
	Create(ctx context.Context, m *entity.Movie) error
	GetByID(ctx context.Context, id string) (*entity.Movie, error)
	List(ctx context.Context, p MovieListParams) ([]*entity.Movie, error)
	Update(ctx context.Context, m *entity.Movie) error
	Delete(ctx context.Context, id string) error
}

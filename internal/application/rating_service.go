package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/screenlog/movie-catalog-api/internal/domain/entity"
	"github.com/screenlog/movie-catalog-api/internal/domain/repository"
)

// RatingService manages per-user movie ratings and their aggregate.
type RatingService struct {
	Ratings repository.RatingRepository
	Movies  repository.MovieRepository
	Logger  *logrus.Logger
}

func NewRatingService(ratings repository.RatingRepository, movies repository.MovieRepository, logger *logrus.Logger) *RatingService {
	return &RatingService{Ratings: ratings, Movies: movies, Logger: logger}
}

// RatingPage is a page of ratings plus the movie-wide average, computed
// over every rating so it is unaffected by paging or score filters.
type RatingPage struct {
	Ratings      []*entity.Rating
	AverageScore *float64
}

// Upsert records the user's rating for a movie, replacing any previous
// rating by the same user.
func (s *RatingService) Upsert(ctx context.Context, movieID, userID string, score int, review string) (*entity.Rating, error) {
	if m, err := s.Movies.GetByID(ctx, movieID); err != nil || m == nil {
		return nil, ErrMovieNotFound
	}
	r := &entity.Rating{
		Score:   score,
		Review:  review,
		MovieID: movieID,
		UserID:  userID,
	}
	if err := s.Ratings.Upsert(ctx, r); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"movie_id": movieID, "user_id": userID, "score": score}).Info("rating recorded")
	return r, nil
}

// List returns a page of a movie's ratings with the overall average.
func (s *RatingService) List(ctx context.Context, movieID string, skip, limit int, score *int) (*RatingPage, error) {
	if m, err := s.Movies.GetByID(ctx, movieID); err != nil || m == nil {
		return nil, ErrMovieNotFound
	}
	ratings, err := s.Ratings.ListByMovie(ctx, movieID, skip, limit, score)
	if err != nil {
		return nil, err
	}
	avg, err := s.Ratings.AverageScore(ctx, movieID)
	if err != nil {
		return nil, err
	}
	return &RatingPage{Ratings: ratings, AverageScore: avg}, nil
}

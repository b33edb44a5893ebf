package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/screenlog/movie-catalog-api/internal/domain/entity"
	"github.com/screenlog/movie-catalog-api/internal/domain/repository"
)

type RatingRepository struct {
	pool *pgxpool.Pool
}

func NewRatingRepository(pool *pgxpool.Pool) *RatingRepository {
	return &RatingRepository{pool: pool}
}

// Upsert inserts the rating or, when the (user, movie) pair already has a
// row, overwrites score and review in place. The unique constraint makes
// concurrent submissions converge on one row.
func (r *RatingRepository) Upsert(ctx context.Context, rt *entity.Rating) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO ratings (score, review, movie_id, user_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, movie_id)
		DO UPDATE SET score = EXCLUDED.score, review = EXCLUDED.review, updated_at = now()
		RETURNING id, created_at, updated_at
	`, rt.Score, rt.Review, rt.MovieID, rt.UserID)

	return row.Scan(&rt.ID, &rt.CreatedAt, &rt.UpdatedAt)
}

func (r *RatingRepository) ListByMovie(ctx context.Context, movieID string, skip, limit int, score *int) ([]*entity.Rating, error) {
	q := `
		SELECT id, score, review, movie_id, user_id, created_at, updated_at
		FROM ratings
		WHERE movie_id = $1`
	args := []any{movieID}

	if score != nil {
		args = append(args, *score)
		q += ` AND score = $2`
	}
	args = append(args, skip, limit)
	if score != nil {
		q += ` ORDER BY created_at OFFSET $3 LIMIT $4`
	} else {
		q += ` ORDER BY created_at OFFSET $2 LIMIT $3`
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := []*entity.Rating{}
	for rows.Next() {
		rt := &entity.Rating{}
		if err := rows.Scan(&rt.ID, &rt.Score, &rt.Review, &rt.MovieID, &rt.UserID,
			&rt.CreatedAt, &rt.UpdatedAt); err != nil {
			return nil, err
		}
		ratings = append(ratings, rt)
	}
	return ratings, rows.Err()
}

// AverageScore returns the mean score over all ratings for the movie,
// rounded to two decimals, or nil when no ratings exist.
func (r *RatingRepository) AverageScore(ctx context.Context, movieID string) (*float64, error) {
	var avg *float64
	row := r.pool.QueryRow(ctx, `
		SELECT ROUND(AVG(score)::numeric, 2)::float8
		FROM ratings
		WHERE movie_id = $1
	`, movieID)
	if err := row.Scan(&avg); err != nil {
		return nil, err
	}
	return avg, nil
}

var _ repository.RatingRepository = (*RatingRepository)(nil)

package postgres

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/screenlog/movie-catalog-api/internal/domain/entity"
	"github.com/screenlog/movie-catalog-api/internal/domain/repository"
)

type MovieRepository struct {
	pool *pgxpool.Pool
}

func NewMovieRepository(pool *pgxpool.Pool) *MovieRepository {
	return &MovieRepository{pool: pool}
}

func (r *MovieRepository) Create(ctx context.Context, m *entity.Movie) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO movies (title, description, duration, release_date, poster_url, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, m.Title, m.Description, m.Duration, m.ReleaseDate, m.PosterURL, m.OwnerID)

	if err := row.Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if isUniqueViolation(err, "") {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (r *MovieRepository) GetByID(ctx context.Context, id string) (*entity.Movie, error) {
	m := &entity.Movie{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, title, description, duration, release_date, poster_url, owner_id, created_at, updated_at
		FROM movies
		WHERE id = $1
	`, id)
	if err := row.Scan(&m.ID, &m.Title, &m.Description, &m.Duration, &m.ReleaseDate,
		&m.PosterURL, &m.OwnerID, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// List applies the optional search filter and sort mode. The rating sorts
// join the average score; movies without ratings sort last.
func (r *MovieRepository) List(ctx context.Context, p repository.MovieListParams) ([]*entity.Movie, error) {
	q := `
		SELECT m.id, m.title, m.description, m.duration, m.release_date, m.poster_url,
		       m.owner_id, m.created_at, m.updated_at
		FROM movies m`
	args := []any{}

	switch p.SortBy {
	case repository.SortMostRated, repository.SortMostRatedAndRecent:
		q += `
		LEFT JOIN (
			SELECT movie_id, AVG(score) AS avg_score
			FROM ratings
			GROUP BY movie_id
		) r ON r.movie_id = m.id`
	}

	if p.Search != "" {
		args = append(args, "%"+p.Search+"%")
		q += `
		WHERE m.title ILIKE $1 OR m.description ILIKE $1`
	}

	switch p.SortBy {
	case repository.SortMostRecent:
		q += `
		ORDER BY m.release_date DESC`
	case repository.SortMostRated:
		q += `
		ORDER BY r.avg_score DESC NULLS LAST`
	case repository.SortMostRatedAndRecent:
		q += `
		ORDER BY r.avg_score DESC NULLS LAST, m.release_date DESC`
	default:
		q += `
		ORDER BY m.created_at`
	}

	args = append(args, p.Skip, p.Limit)
	q += `
		OFFSET $` + strconv.Itoa(len(args)-1) + ` LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []*entity.Movie{}
	for rows.Next() {
		m := &entity.Movie{}
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.Duration, &m.ReleaseDate,
			&m.PosterURL, &m.OwnerID, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

func (r *MovieRepository) Update(ctx context.Context, m *entity.Movie) error {
	m.UpdatedAt = time.Now().UTC()

	res, err := r.pool.Exec(ctx, `
		UPDATE movies
		SET title = $1, description = $2, duration = $3, release_date = $4, poster_url = $5, updated_at = $6
		WHERE id = $7
	`, m.Title, m.Description, m.Duration, m.ReleaseDate, m.PosterURL, m.UpdatedAt, m.ID)
	if err != nil {
		if isUniqueViolation(err, "") {
			return ErrConflict
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the movie. Its ratings and comments cascade via
// foreign-key constraints.
func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ repository.MovieRepository = (*MovieRepository)(nil)

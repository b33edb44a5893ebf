package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/screenlog/movie-catalog-api/internal/domain/entity"
	"github.com/screenlog/movie-catalog-api/internal/domain/repository"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO comments (content, movie_id, parent_comment_id, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, c.Content, c.MovieID, c.ParentCommentID, c.UserID)

	return row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	c := &entity.Comment{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, content, movie_id, parent_comment_id, user_id, created_at, updated_at
		FROM comments
		WHERE id = $1
	`, id)
	if err := row.Scan(&c.ID, &c.Content, &c.MovieID, &c.ParentCommentID, &c.UserID,
		&c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// ListTopLevel returns parent-less comments for the movie with their direct
// replies attached. Replies are loaded in one follow-up query and grouped
// by parent, oldest first.
func (r *CommentRepository) ListTopLevel(ctx context.Context, movieID string, skip, limit int, newestFirst bool) ([]*entity.Comment, error) {
	order := "ASC"
	if newestFirst {
		order = "DESC"
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, content, movie_id, parent_comment_id, user_id, created_at, updated_at
		FROM comments
		WHERE movie_id = $1 AND parent_comment_id IS NULL
		ORDER BY created_at `+order+`
		OFFSET $2 LIMIT $3
	`, movieID, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []*entity.Comment{}
	byID := map[string]*entity.Comment{}
	ids := []string{}
	for rows.Next() {
		c := &entity.Comment{Replies: []*entity.Comment{}}
		if err := rows.Scan(&c.ID, &c.Content, &c.MovieID, &c.ParentCommentID, &c.UserID,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		comments = append(comments, c)
		byID[c.ID] = c
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return comments, nil
	}

	replyRows, err := r.pool.Query(ctx, `
		SELECT id, content, movie_id, parent_comment_id, user_id, created_at, updated_at
		FROM comments
		WHERE parent_comment_id = ANY($1)
		ORDER BY created_at ASC
	`, ids)
	if err != nil {
		return nil, err
	}
	defer replyRows.Close()

	for replyRows.Next() {
		c := &entity.Comment{}
		if err := replyRows.Scan(&c.ID, &c.Content, &c.MovieID, &c.ParentCommentID, &c.UserID,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		if parent, ok := byID[*c.ParentCommentID]; ok {
			parent.Replies = append(parent.Replies, c)
		}
	}
	return comments, replyRows.Err()
}

var _ repository.CommentRepository = (*CommentRepository)(nil)

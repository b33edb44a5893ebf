package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/screenlog/movie-catalog-api/internal/domain/entity"
	"github.com/screenlog/movie-catalog-api/internal/domain/repository"
)

// CommentService manages movie comments and their single level of replies.
type CommentService struct {
	Comments repository.CommentRepository
	Movies   repository.MovieRepository
	Logger   *logrus.Logger
}

func NewCommentService(comments repository.CommentRepository, movies repository.MovieRepository, logger *logrus.Logger) *CommentService {
	return &CommentService{Comments: comments, Movies: movies, Logger: logger}
}

// CreateTopLevel posts a comment directly on a movie.
func (s *CommentService) CreateTopLevel(ctx context.Context, movieID, userID, content string) (*entity.Comment, error) {
	if m, err := s.Movies.GetByID(ctx, movieID); err != nil || m == nil {
		return nil, ErrMovieNotFound
	}
	c := &entity.Comment{
		Content: content,
		MovieID: &movieID,
		UserID:  userID,
	}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// CreateReply posts a reply to an existing top-level comment. Threads are
// one level deep: replying to a reply is rejected.
func (s *CommentService) CreateReply(ctx context.Context, parentID, userID, content string) (*entity.Comment, error) {
	parent, err := s.Comments.GetByID(ctx, parentID)
	if err != nil || parent == nil {
		return nil, ErrCommentNotFound
	}
	if parent.IsReply() {
		return nil, ErrReplyToReply
	}
	c := &entity.Comment{
		Content:         content,
		ParentCommentID: &parentID,
		UserID:          userID,
	}
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns a page of a movie's top-level comments with their direct
// replies attached, oldest-reply-first.
func (s *CommentService) List(ctx context.Context, movieID string, skip, limit int, newestFirst bool) ([]*entity.Comment, error) {
	if m, err := s.Movies.GetByID(ctx, movieID); err != nil || m == nil {
		return nil, ErrMovieNotFound
	}
	return s.Comments.ListTopLevel(ctx, movieID, skip, limit, newestFirst)
}

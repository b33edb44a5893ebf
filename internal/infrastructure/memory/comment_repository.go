package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/screenlog/movie-catalog-api/internal/domain/entity"
	"github.com/screenlog/movie-catalog-api/internal/domain/repository"
)

type CommentRepository struct {
	mu       sync.RWMutex
	seq      idSeq
	comments map[string]*entity.Comment
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: map[string]*entity.Comment{}}
}

func copyComment(c *entity.Comment) *entity.Comment {
	cp := *c
	cp.Replies = nil
	if c.MovieID != nil {
		m := *c.MovieID
		cp.MovieID = &m
	}
	if c.ParentCommentID != nil {
		p := *c.ParentCommentID
		cp.ParentCommentID = &p
	}
	return &cp
}

func (r *CommentRepository) Create(_ context.Context, c *entity.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = r.seq.next("comment")
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	r.comments[c.ID] = copyComment(c)
	return nil
}

func (r *CommentRepository) GetByID(_ context.Context, id string) (*entity.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyComment(c), nil
}

func (r *CommentRepository) ListTopLevel(_ context.Context, movieID string, skip, limit int, newestFirst bool) ([]*entity.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	top := []*entity.Comment{}
	for _, c := range r.comments {
		if c.ParentCommentID == nil && c.MovieID != nil && *c.MovieID == movieID {
			top = append(top, copyComment(c))
		}
	}
	sort.SliceStable(top, func(i, j int) bool {
		if newestFirst {
			return top[i].CreatedAt.After(top[j].CreatedAt)
		}
		return top[i].CreatedAt.Before(top[j].CreatedAt)
	})

	if skip >= len(top) {
		return []*entity.Comment{}, nil
	}
	top = top[skip:]
	if limit > 0 && limit < len(top) {
		top = top[:limit]
	}

	for _, parent := range top {
		parent.Replies = []*entity.Comment{}
		for _, c := range r.comments {
			if c.ParentCommentID != nil && *c.ParentCommentID == parent.ID {
				parent.Replies = append(parent.Replies, copyComment(c))
			}
		}
		sort.SliceStable(parent.Replies, func(i, j int) bool {
			return parent.Replies[i].CreatedAt.Before(parent.Replies[j].CreatedAt)
		})
	}
	return top, nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)

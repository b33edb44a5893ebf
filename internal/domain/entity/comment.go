package entity

import (
	"time"
)

// Comment forms a thread of at most one level: a top-level comment has
// ParentCommentID nil and a movie reference; a reply points at a top-level
// parent. Replies never carry replies of their own.
type Comment struct {
	ID              string
	Content         string
	MovieID         *string
	ParentCommentID *string
	UserID          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Replies         []*Comment
}

// IsReply reports whether the comment is a reply to another comment.
func (c *Comment) IsReply() bool {
	return c.ParentCommentID != nil
}
